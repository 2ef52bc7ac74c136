package importer_test

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-anniversary/internal/engine"
	"github.com/tartampluch/go-anniversary/internal/importer"
)

func TestParseVCard(t *testing.T) {
	data := "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:John Doe\r\nANNIVERSARY:20000229\r\nEND:VCARD\r\n" +
		"BEGIN:VCARD\r\nVERSION:4.0\r\nN:Lovelace;Ada;;;\r\nANNIVERSARY:1990-06-15\r\nEND:VCARD\r\n" +
		"BEGIN:VCARD\r\nVERSION:4.0\r\nFN:No Anniversary\r\nBDAY:1980-01-01\r\nEND:VCARD\r\n" +
		"BEGIN:VCARD\r\nVERSION:4.0\r\nFN:No Year\r\nANNIVERSARY:--0615\r\nEND:VCARD\r\n"

	people, err := importer.ParseVCard(strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []engine.Person{
		{Name: "John Doe", StartDate: engine.Date(2000, 2, 29)},
		{Name: "Ada Lovelace", StartDate: engine.Date(1990, 6, 15)},
	}, people)
}

func TestParseVCard_Empty(t *testing.T) {
	people, err := importer.ParseVCard(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, people)
}

func TestParseVCard_SkipsMalformedCard(t *testing.T) {
	data := "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:First\r\nANNIVERSARY:2001-01-01\r\nEND:VCARD\r\n" +
		"BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Broken\r\nANNIVERSARY:2002-02-02\r\nEND:VCALENDAR\r\n" +
		"BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Last\r\nANNIVERSARY:2003-03-03\r\nEND:VCARD\r\n"

	people, err := importer.ParseVCard(strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []engine.Person{
		{Name: "First", StartDate: engine.Date(2001, 1, 1)},
		{Name: "Last", StartDate: engine.Date(2003, 3, 3)},
	}, people)
}

func TestParseVCard_AbortsOnBrokenStream(t *testing.T) {
	people, err := importer.ParseVCard(iotest.ErrReader(errors.New("connection reset")))
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrImportFailure)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Nil(t, people)
}
