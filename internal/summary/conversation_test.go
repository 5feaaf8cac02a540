package summary

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"summarist/internal/prompt"
)

func mkExchange(n int, text string) (Message, Message, Version) {
	now := time.Now().UTC()
	user := Message{Role: RoleUser, Content: "please summarize", CreatedAt: now}
	model := Message{Role: RoleModel, Content: text, CreatedAt: now}
	return user, model, Version{Content: text, CreatedAt: now, Number: n}
}

func TestConversationPairedGrowth(t *testing.T) {
	c := NewConversation(DocumentMeta{Name: "doc.pdf"}, Config{Size: prompt.SizeShort})
	require.NotEmpty(t, c.ID)
	require.False(t, c.HasModelMessage())

	for i := 1; i <= 3; i++ {
		u, m, v := mkExchange(i, "summary text")
		require.NoError(t, c.AppendExchange(u, m, v))
		require.Len(t, c.Messages(), 2*c.LatestNumber())
	}
	require.True(t, c.HasModelMessage())
	require.Equal(t, 3, c.LatestNumber())
}

func TestConversationRejectsBrokenPair(t *testing.T) {
	c := NewConversation(DocumentMeta{}, Config{})
	u, m, v := mkExchange(1, "x")

	require.Error(t, c.AppendExchange(m, u, v)) // roles swapped
	require.Empty(t, c.Messages())
	require.Zero(t, c.LatestNumber())
}

func TestConversationRejectsVersionGap(t *testing.T) {
	c := NewConversation(DocumentMeta{}, Config{})
	u, m, v := mkExchange(2, "x") // should be 1

	require.Error(t, c.AppendExchange(u, m, v))
	require.Empty(t, c.Messages())
}

func TestContextWindow(t *testing.T) {
	c := NewConversation(DocumentMeta{}, Config{})
	u, m, v := mkExchange(1, "first summary")
	require.NoError(t, c.AppendExchange(u, m, v))

	window := c.ContextWindow()
	require.Len(t, window, 2)
	require.Equal(t, RoleUser, window[0].Role)
	require.Equal(t, RoleModel, window[1].Role)
	require.Equal(t, "first summary", window[1].Content)
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := NewConversation(
		DocumentMeta{Name: "paper.pdf", SizeBytes: 2048, Extension: ".pdf", MIMEType: "application/pdf"},
		Config{Size: prompt.SizeLong, CustomPrompt: "focus on the methodology"},
	)
	u, m, v := mkExchange(1, "v1")
	u.AttachmentRef = c.ID + "/paper.pdf"
	require.NoError(t, c.AppendExchange(u, m, v))
	u2, m2, v2 := mkExchange(2, "v2")
	v2.RefinementPrompt = "make it shorter"
	require.NoError(t, c.AppendExchange(u2, m2, v2))

	snap := c.Snapshot()
	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	again, err := json.Marshal(decoded)
	require.NoError(t, err)
	require.JSONEq(t, string(data), string(again))

	restored, err := Restore(decoded)
	require.NoError(t, err)
	require.Equal(t, c.ID, restored.ID)
	require.Equal(t, c.Config, restored.Config)
	require.Equal(t, 2, restored.LatestNumber())
	require.Len(t, restored.Messages(), 4)
	require.Equal(t, c.ID+"/paper.pdf", restored.Messages()[0].AttachmentRef)
}

func TestConversationConcurrentReadsDuringAppend(t *testing.T) {
	c := NewConversation(DocumentMeta{Name: "doc.pdf"}, Config{Size: prompt.SizeShort})

	stop := make(chan struct{})
	var unpaired atomic.Bool
	var readers sync.WaitGroup
	for i := 0; i < 4; i++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				// A snapshot taken mid-commit must still be paired.
				if snap := c.Snapshot(); len(snap.Messages) != 2*len(snap.Versions) {
					unpaired.Store(true)
					return
				}
				_ = c.Versions()
				_ = c.ContextWindow()
				_ = c.HasModelMessage()
				if n := c.LatestNumber(); n > 0 {
					_, _ = c.VersionAt(n - 1)
					_, _ = c.Undo(n - 1)
				}
			}
		}()
	}

	for i := 1; i <= 50; i++ {
		u, m, v := mkExchange(i, "summary text")
		require.NoError(t, c.AppendExchange(u, m, v))
	}
	close(stop)
	readers.Wait()
	require.False(t, unpaired.Load())

	require.Equal(t, 50, c.LatestNumber())
	require.Len(t, c.Messages(), 100)
}

func TestRestoreRejectsUnpairedSnapshot(t *testing.T) {
	u, m, v := mkExchange(1, "x")
	snap := Snapshot{
		ConversationID: "abc",
		Messages:       []Message{u, m, u}, // odd message count
		Versions:       []Version{v},
	}
	_, err := Restore(snap)
	require.Error(t, err)

	_, err = Restore(Snapshot{Versions: []Version{v}})
	require.Error(t, err) // missing id
}
