package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNLUResponse_Intents(t *testing.T) {
	content := `(intent<||>search_property<||>0.92<||>0.8)##` +
		`(intent<||>book_visit<||>0.35<||>0.9)##<|COMPLETE|>`

	resp, err := ParseNLUResponse(content)
	require.NoError(t, err)
	require.Len(t, resp.Intents, 2)

	assert.Equal(t, "search_property", resp.PrimaryIntent)
	assert.InDelta(t, 0.92*0.6+0.8*0.4, resp.ImportanceScore, 1e-9)
}

func TestParseNLUResponse_EntityPosition(t *testing.T) {
	content := `(entity<||>city<||>dubai<||>0.95<||>{"entity_position":[10,15]})##<|COMPLETE|>`

	resp, err := ParseNLUResponse(content)
	require.NoError(t, err)
	require.Len(t, resp.Entities, 1)

	e := resp.Entities[0]
	assert.Equal(t, "city", e.Type)
	assert.Equal(t, "dubai", e.Value)
	assert.Equal(t, []int{10, 15}, e.Position)
}

func TestParseNLUResponse_PrimaryLanguage(t *testing.T) {
	content := `(language<||>ara<||>0.40<||>0)##(language<||>eng<||>0.95<||>1)##<|COMPLETE|>`

	resp, err := ParseNLUResponse(content)
	require.NoError(t, err)
	require.Len(t, resp.Languages, 2)
	assert.Equal(t, "eng", resp.PrimaryLanguage)
}

func TestParseNLUResponse_SentimentMetaSanitized(t *testing.T) {
	content := `(sentiment<||>negative<||>0.97<||>{"polarity":-3.0,"subjectivity":0.5})##<|COMPLETE|>`

	resp, err := ParseNLUResponse(content)
	require.NoError(t, err)

	assert.Equal(t, "negative", resp.Sentiment.Label)
	assert.InDelta(t, 0.97, resp.Sentiment.Confidence, 1e-9)
	_, hasPolarity := resp.Sentiment.Metadata["polarity"]
	assert.False(t, hasPolarity, "out-of-range polarity should be dropped")
	assert.Equal(t, 0.5, resp.Sentiment.Metadata["subjectivity"])
}

func TestParseNLUResponse_MalformedRecordsAreSkipped(t *testing.T) {
	content := `garbage without parens##(intent<||>greet<||>1.7<||>0.1)##` +
		`(intent<||>greet<||>0.9<||>0.1)##<|COMPLETE|>`

	resp, err := ParseNLUResponse(content)
	require.NoError(t, err)

	// confidence out of [0,1] drops the record, valid record survives
	require.Len(t, resp.Intents, 1)
	assert.Equal(t, "greet", resp.PrimaryIntent)

	errs, _ := resp.ParsingMetadata["parsing_errors"].([]string)
	assert.NotEmpty(t, errs)
}

func TestParseNLUResponse_InvalidLanguageCode(t *testing.T) {
	content := `(language<||>english<||>0.9<||>1)##<|COMPLETE|>`

	resp, err := ParseNLUResponse(content)
	require.NoError(t, err)
	assert.Empty(t, resp.Languages)
}

func TestParseNLUResponse_ContentAfterEndDelimiterIgnored(t *testing.T) {
	content := `(intent<||>greet<||>0.9<||>0.1)##<|COMPLETE|>(intent<||>book_visit<||>0.9<||>0.9)`

	resp, err := ParseNLUResponse(content)
	require.NoError(t, err)
	require.Len(t, resp.Intents, 1)
	assert.Equal(t, "greet", resp.PrimaryIntent)
}

func TestParseNLUResponse_OversizedContentTruncated(t *testing.T) {
	content := `(intent<||>greet<||>0.9<||>0.1)##` + strings.Repeat("x", maxContentLen)

	resp, err := ParseNLUResponse(content)
	require.NoError(t, err)
	assert.Equal(t, true, resp.ParsingMetadata["truncated"])
	require.Len(t, resp.Intents, 1)
}
