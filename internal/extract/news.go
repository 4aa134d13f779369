package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dossier-ai/dossier/internal/telemetry"
	"github.com/dossier-ai/dossier/models"
	searchmodels "github.com/dossier-ai/dossier/tools/web_search/models"
	"github.com/dossier-ai/dossier/utils"
)

// Digest modes. Unknown modes get the briefing instruction.
const (
	ModeBriefing     = "briefing"
	ModeFunFact      = "fun_fact"
	ModeSingleSource = "single_source"
)

var modeInstructions = map[string]string{
	ModeBriefing:     "Return a concise daily briefing: 4-6 sentences + compact bullets.",
	ModeFunFact:      "Return 1-3 quirky, surprising facts with short context.",
	ModeSingleSource: "Summarize from a single source if clearly present; otherwise a briefing.",
}

// SummarizeNews turns a set of web results into a compact digest. The
// caller-supplied topic and mode always win over whatever the model echoed.
func (e *Extractor) SummarizeNews(ctx context.Context, topic, mode string, results []searchmodels.Result) (models.NewsDigest, error) {
	instruction, ok := modeInstructions[mode]
	if !ok {
		instruction = modeInstructions[ModeBriefing]
	}

	prompt := fmt.Sprintf(
		"You are a precise news analyst.\nTopic: %s\nMode: %s -> %s\n"+
			"Rules: facts, dates, numbers; <=2 sentences per article; 3-5 key points; "+
			"max 8 items; include citations (the article URLs you relied on).\n\nWeb results:\n%s",
		topic, mode, instruction, FormatResults(results))

	schema := NewsDigestSchema()
	reply, err := e.llm.GenerateJSON(ctx, prompt, SanitizeSchema(schema))
	if err != nil {
		telemetry.LLMRequests.WithLabelValues("summarize", "error").Inc()
		return models.NewsDigest{}, &ExtractionError{Kind: KindNews, Subject: topic, Err: err}
	}
	telemetry.LLMRequests.WithLabelValues("summarize", "ok").Inc()

	var digest models.NewsDigest
	if err := DecodeValidated(reply, schema, &digest); err != nil {
		e.logger.Printf("invalid digest for topic %q: %v", topic, err)
		return models.NewsDigest{}, &ExtractionError{Kind: KindNews, Subject: topic, Err: err}
	}

	// The model is not trusted to echo these back correctly.
	digest.Topic = topic
	digest.Mode = mode
	for i := range digest.Articles {
		if digest.Articles[i].Source == "" {
			digest.Articles[i].Source = utils.Domain(digest.Articles[i].URL)
		}
	}
	digest.ID = uuid.NewString()
	digest.GeneratedAt = time.Now()
	digest.Normalize()
	return digest, nil
}
