package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aiact-tutor/internal/config"
	"aiact-tutor/internal/rag/interfaces"
	"aiact-tutor/internal/rag/schema"
	"aiact-tutor/pkg/logger"
)

// QAPipeline answers natural language questions over the indexed corpus.
// Each call retrieves once, and the same chunk slice backs both the prompt
// context and the returned sources, so citations always refer to text the
// model actually saw.
type QAPipeline struct {
	retriever *Retriever
	llm       interfaces.LLM
	topK      int
	timeout   time.Duration
	log       *logger.Logger
}

// QAOption customises pipeline construction.
type QAOption func(*QAPipeline)

// WithTopK overrides the default number of chunks retrieved per question.
func WithTopK(k int) QAOption {
	return func(p *QAPipeline) {
		if k > 0 {
			p.topK = k
		}
	}
}

// WithTimeout overrides the generation deadline.
func WithTimeout(d time.Duration) QAOption {
	return func(p *QAPipeline) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// NewQAPipeline wires a retriever and a generation model into a pipeline.
func NewQAPipeline(retriever *Retriever, llm interfaces.LLM, opts ...QAOption) *QAPipeline {
	p := &QAPipeline{
		retriever: retriever,
		llm:       llm,
		topK:      config.DefaultTopK,
		timeout:   time.Duration(config.DefaultTimeoutSeconds) * time.Second,
		log:       logger.New("qa_pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Answer runs the full question answering flow: retrieve, format, prompt,
// generate. An empty retrieval is not an error; the model is asked to answer
// with no grounding and will say it does not know.
func (p *QAPipeline) Answer(ctx context.Context, question string) (*schema.Answer, error) {
	if question == "" {
		return nil, fmt.Errorf("question must not be empty")
	}

	chunks, err := p.retriever.Retrieve(ctx, question, p.topK)
	if err != nil {
		return nil, err
	}

	prompt := BuildPrompt(FormatContext(chunks), question)

	genCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	text, err := p.llm.Generate(genCtx, prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(genCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrGenerationTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	p.log.WithField("question_len", len(question)).
		WithField("sources", len(chunks)).
		Debug("answered question")

	return &schema.Answer{
		Text:    text,
		Sources: chunks,
	}, nil
}
