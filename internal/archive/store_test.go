package archive

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"summarist/internal/prompt"
	"summarist/internal/summary"
)

func sampleSnapshot(id string) summary.Snapshot {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return summary.Snapshot{
		ConversationID: id,
		Document: summary.DocumentMeta{
			Name:      "report.pdf",
			SizeBytes: 2048,
			Extension: ".pdf",
			MIMEType:  "application/pdf",
		},
		Messages: []summary.Message{
			{Role: summary.RoleUser, Content: "summarize this", CreatedAt: now},
			{Role: summary.RoleModel, Content: "the report covers Q1", CreatedAt: now},
		},
		Versions: []summary.Version{
			{Content: "the report covers Q1", CreatedAt: now, Number: 1},
		},
		Config:    summary.Config{Size: prompt.SizeMedium},
		CreatedAt: now,
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "conversations.json")
	s := New(path)
	ctx := context.Background()

	_, ok, err := s.Load(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	want := sampleSnapshot("conv-1")
	require.NoError(t, s.Save(ctx, want))

	got, ok, err := s.Load(ctx, "conv-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestFileStoreSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversations.json")
	ctx := context.Background()

	first := New(path)
	require.NoError(t, first.Save(ctx, sampleSnapshot("conv-a")))
	require.NoError(t, first.Save(ctx, sampleSnapshot("conv-b")))

	// A fresh store reads the file written by the previous one.
	second := New(path)
	got, ok, err := second.Load(ctx, "conv-a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "conv-a", got.ConversationID)

	ids, err := second.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"conv-a", "conv-b"}, ids)
}

func TestFileStoreOverwritesSameConversation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversations.json")
	s := New(path)
	ctx := context.Background()

	snap := sampleSnapshot("conv-1")
	require.NoError(t, s.Save(ctx, snap))

	snap.Versions = append(snap.Versions, summary.Version{
		Content:          "shorter",
		CreatedAt:        snap.CreatedAt,
		Number:           2,
		RefinementPrompt: "make it shorter",
	})
	snap.Messages = append(snap.Messages,
		summary.Message{Role: summary.RoleUser, Content: "make it shorter", CreatedAt: snap.CreatedAt},
		summary.Message{Role: summary.RoleModel, Content: "shorter", CreatedAt: snap.CreatedAt},
	)
	require.NoError(t, s.Save(ctx, snap))

	got, ok, err := s.Load(ctx, "conv-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got.Versions, 2)

	ids, err := s.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"conv-1"}, ids)
}

func TestNilStoreIsNoOp(t *testing.T) {
	var s *Store
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleSnapshot("x")))
	_, ok, err := s.Load(ctx, "x")
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, s.Close())
}
