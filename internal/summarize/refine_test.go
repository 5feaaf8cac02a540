package summarize

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"summarist/internal/prompt"
	"summarist/internal/summary"
)

func generated(t *testing.T, sc *scriptClient) (*Service, *summary.Conversation) {
	t.Helper()
	svc := New(sc, nil, nil)
	conv, _, err := svc.Generate(context.Background(), pdfDoc("a.pdf", []byte("x")), prompt.SizeShort, "")
	require.NoError(t, err)
	return svc, conv
}

func TestRefineRequiresPriorSummary(t *testing.T) {
	sc := &scriptClient{}
	svc := New(sc, nil, nil)
	empty := summary.NewConversation(summary.DocumentMeta{}, summary.Config{})

	_, err := svc.Refine(context.Background(), empty, prompt.IntentShorter, "")
	require.ErrorIs(t, err, ErrNoSummaryToRefine)
	require.Zero(t, sc.calls)
	require.Empty(t, empty.Messages())

	_, err = svc.Refine(context.Background(), nil, prompt.IntentShorter, "")
	require.ErrorIs(t, err, ErrNoSummaryToRefine)
}

func TestRefineAppendsNextVersion(t *testing.T) {
	sc := &scriptClient{text: "v1 text"}
	svc, conv := generated(t, sc)

	sc.text = "shorter text"
	v, err := svc.Refine(context.Background(), conv, prompt.IntentShorter, "")
	require.NoError(t, err)

	require.Equal(t, 2, v.Number)
	require.Equal(t, "shorter text", v.Content)
	require.NotEmpty(t, v.RefinementPrompt)

	require.Equal(t, 2, conv.LatestNumber())
	require.Len(t, conv.Messages(), 4)

	// Prior exchange was replayed as context for the call.
	require.Len(t, sc.lastHistory, 2)
	require.Equal(t, "model", sc.lastHistory[1].Role)
	require.Equal(t, "v1 text", sc.lastHistory[1].Content)
}

func TestRefineCustomFeedbackUsedVerbatim(t *testing.T) {
	sc := &scriptClient{}
	svc, conv := generated(t, sc)

	v, err := svc.Refine(context.Background(), conv, prompt.IntentCustom, "mention the budget numbers")
	require.NoError(t, err)
	require.Equal(t, "mention the budget numbers", v.RefinementPrompt)
	require.Equal(t, "mention the budget numbers", sc.lastPrompt)
}

func TestRefineUnknownIntentFailsBeforeRemoteCall(t *testing.T) {
	sc := &scriptClient{}
	svc, conv := generated(t, sc)
	callsAfterGenerate := sc.calls

	_, err := svc.Refine(context.Background(), conv, prompt.Intent("funnier"), "")
	require.Error(t, err)
	require.Equal(t, callsAfterGenerate, sc.calls)
	require.Equal(t, 1, conv.LatestNumber())
}

func TestRefineFailureLeavesConversationUnchanged(t *testing.T) {
	sc := &scriptClient{}
	svc, conv := generated(t, sc)

	sc.errs = []error{errors.New("invalid request")}
	_, err := svc.Refine(context.Background(), conv, prompt.IntentLonger, "")
	require.Error(t, err)

	require.Equal(t, 1, conv.LatestNumber())
	require.Len(t, conv.Messages(), 2)
}

func TestRefineCancelledCommitsNothing(t *testing.T) {
	sc := &scriptClient{}
	svc, conv := generated(t, sc)

	sc.errs = []error{context.Canceled}
	_, err := svc.Refine(context.Background(), conv, prompt.IntentLonger, "")
	require.ErrorIs(t, err, ErrCancelled)
	require.Equal(t, 1, conv.LatestNumber())
	require.Len(t, conv.Messages(), 2)
}

func TestSequentialRefinementsNumberGaplessly(t *testing.T) {
	sc := &scriptClient{}
	svc, conv := generated(t, sc)

	for want := 2; want <= 5; want++ {
		v, err := svc.Refine(context.Background(), conv, prompt.IntentAddDetails, "")
		require.NoError(t, err)
		require.Equal(t, want, v.Number)
	}
	versions := conv.Versions()
	for i, v := range versions {
		require.Equal(t, i+1, v.Number)
	}
	require.Len(t, conv.Messages(), 2*len(versions))
}
