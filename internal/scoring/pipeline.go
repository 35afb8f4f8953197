package scoring

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/section"
	"github.com/spigell/ats-scorer/internal/textnorm"
	"github.com/spigell/ats-scorer/internal/utils"
)

const maxLoggedText = 120

// Result carries the score together with the intermediate texts it was
// computed from.
type Result struct {
	Experience string   `json:"experience"`
	Skills     []string `json:"skills"`
	ResumeText string   `json:"resume_text"`
	JobText    string   `json:"job_text"`
	Score      float64  `json:"score"`
	Percent    float64  `json:"percent"`
}

// Pipeline runs extraction, normalization and scoring for one résumé and one
// job description.
type Pipeline struct {
	extractor  *section.Extractor
	normalizer textnorm.Normalizer
	scorer     *Scorer
	logger     *zap.Logger
}

func NewPipeline(extractor *section.Extractor, normalizer textnorm.Normalizer, scorer *Scorer, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		extractor:  extractor,
		normalizer: normalizer,
		scorer:     scorer,
		logger:     logger,
	}
}

// Prepare extracts the Experience section and the skills of resume and
// normalizes them together with jd. It never fails.
func (p *Pipeline) Prepare(resume, jd string) *Result {
	experience := p.extractor.Extract(resume, section.Experience)
	skills := p.extractor.ExtractSkills(resume)

	p.logger.Debug("extracted sections",
		zap.Bool("experience_found", experience.Found),
		zap.Int("experience_length", len(experience.Content)),
		zap.Strings("skills", skills),
	)

	resumeText := joinNonEmpty(
		p.normalizer.Normalize(experience.Content),
		p.normalizer.Normalize(strings.Join(skills, " ")),
	)
	jobText := p.normalizer.Normalize(jd)

	if resumeText == "" {
		p.logger.Warn("resume has no comparable content", zap.String("hint", "check the Experience and Skills headings"))
	}
	if jobText == "" {
		p.logger.Warn("job description has no comparable content")
	}

	p.logger.Debug("normalized texts",
		zap.String("resume", utils.TruncateForLog(resumeText, maxLoggedText)),
		zap.String("job", utils.TruncateForLog(jobText, maxLoggedText)),
	)

	return &Result{
		Experience: experience.Content,
		Skills:     skills,
		ResumeText: resumeText,
		JobText:    jobText,
	}
}

// Run prepares both documents and scores them.
func (p *Pipeline) Run(ctx context.Context, resume, jd string) (*Result, error) {
	result := p.Prepare(resume, jd)

	score, err := p.scorer.Score(ctx, result.ResumeText, result.JobText)
	if err != nil {
		return nil, err
	}

	result.Score = score
	result.Percent = Percent(score)

	p.logger.Info("scored resume", zap.Float64("score", score), zap.Float64("percent", result.Percent))

	return result, nil
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " ")
}
