package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatExtractor_NewestReportWins(t *testing.T) {
	payload := `{"ok":true,"result":[
{"update_id":1,"message":{"date":1760000000,"chat":{"username":"alice"},"text":"Pump Volume Report\nTotal Volume: 100 SOL"}},
{"update_id":2,"message":{"date":1760000100,"chat":{"username":"alice"},"text":"Pump Volume Report\nTotal Volume: 200 SOL",
  "forward_origin":{"type":"channel","chat":{"title":"Pump Volume Reports","username":"pumpfunvolumereports"}}}},
{"update_id":3,"message":{"date":1760000200,"chat":{"username":"alice"},"text":"thanks bot"}}
]}`

	out := NewChatExtractor().Extract([]byte(payload))
	assert.Equal(t, 3, out.Scanned)
	require.Len(t, out.Candidates, 1)
	assert.Equal(t, "Pump Volume Report\nTotal Volume: 200 SOL", out.Candidates[0].Content)
	assert.Equal(t, "Pump Volume Reports", out.Candidates[0].Title)
	assert.Equal(t, "2025-10-09T08:55:00Z", out.Candidates[0].PublishedAt)
}

func TestChatExtractor_AlternateMarker(t *testing.T) {
	payload := `{"ok":true,"result":[
{"update_id":1,"channel_post":{"date":1,"chat":{"title":"reports"},"text":"Total Volume: 5 SOL"}},
{"update_id":2,"message":{"date":2,"chat":{"title":"dm"},"text":"Total Volume is up today"}}
]}`

	out := NewChatExtractor().Extract([]byte(payload))
	require.Len(t, out.Candidates, 1)
	assert.Equal(t, "Total Volume: 5 SOL", out.Candidates[0].Content)
	assert.Equal(t, "reports", out.Candidates[0].Title)
}

func TestChatExtractor_CaptionAndForwardFromChat(t *testing.T) {
	payload := `{"ok":true,"result":[
{"update_id":9,"message":{"date":1,"chat":{"username":"bob"},"caption":"Pump Volume Report Total Trades: 3",
  "forward_from_chat":{"username":"pumpfunvolumereports"}}}
]}`

	out := NewChatExtractor().Extract([]byte(payload))
	require.Len(t, out.Candidates, 1)
	assert.Equal(t, "pumpfunvolumereports", out.Candidates[0].Title)
}

func TestChatExtractor_NoReport(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		scanned int
	}{
		{"no updates", `{"ok":true,"result":[]}`, 0},
		{"chatter only", `{"ok":true,"result":[{"update_id":1,"message":{"date":1,"chat":{},"text":"hi"}}]}`, 1},
		{"api error", `{"ok":false,"description":"Unauthorized"}`, 0},
		{"not json", `<html>502</html>`, 0},
		{"update without message", `{"ok":true,"result":[{"update_id":1}]}`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NewChatExtractor().Extract([]byte(tt.payload))
			assert.Empty(t, out.Candidates)
			assert.Equal(t, tt.scanned, out.Scanned)
		})
	}
}
