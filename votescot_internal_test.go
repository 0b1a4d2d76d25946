package votescot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripSelfMention(t *testing.T) {
	b := &Bot{selfID: "UBOT", selfName: "votescot"}

	tests := map[string]struct {
		text             string
		expectedStripped string
		expectedDirected bool
	}{
		"mentionByID":        {text: "<@UBOT> help", expectedStripped: "help", expectedDirected: true},
		"mentionByName":      {text: "@votescot: score", expectedStripped: "score", expectedDirected: true},
		"mentionByBareName":  {text: "votescot leaderboard", expectedStripped: "leaderboard", expectedDirected: true},
		"noMention":          {text: "hello everyone", expectedStripped: "hello everyone", expectedDirected: false},
		"mentionMidSentence": {text: "thanks <@UBOT>", expectedStripped: "thanks <@UBOT>", expectedDirected: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			stripped, directed := b.stripSelfMention(tc.text)

			assert.Equal(t, tc.expectedStripped, stripped)
			assert.Equal(t, tc.expectedDirected, directed)
		})
	}
}
