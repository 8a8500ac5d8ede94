package feedback

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// qualityReportWindow bounds how many rows the quality report aggregates.
const qualityReportWindow = 10000

const feedbackColumns = `id, analysis_id, overall_rating, summary_rating, keywords_rating, recommendations_rating,
       summary_helpful, keywords_helpful, recommendations_helpful, comment, quick, created_at`

func (r *PGRepo) Create(ctx context.Context, f Feedback) error {
	const query = `
INSERT INTO feedback (
	id, analysis_id, overall_rating, summary_rating, keywords_rating, recommendations_rating,
	summary_helpful, keywords_helpful, recommendations_helpful, comment, quick, client_ip, user_agent, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.DB.ExecContext(ctx, query,
		f.ID,
		f.AnalysisID,
		nullRating(f.OverallRating),
		nullRating(f.SummaryRating),
		nullRating(f.KeywordsRating),
		nullRating(f.RecommendationsRating),
		nullBool(f.SummaryHelpful),
		nullBool(f.KeywordsHelpful),
		nullBool(f.RecommendationsHelpful),
		f.Comment,
		f.Quick,
		f.ClientIP,
		f.UserAgent,
		f.CreatedAt,
	)
	return err
}

func (r *PGRepo) ListByAnalysis(ctx context.Context, analysisID string) ([]Feedback, error) {
	query := `SELECT ` + feedbackColumns + `
FROM feedback
WHERE analysis_id = $1
ORDER BY created_at`
	return r.query(ctx, query, analysisID)
}

func (r *PGRepo) ListAll(ctx context.Context) ([]Feedback, error) {
	query := `SELECT ` + feedbackColumns + `
FROM feedback
ORDER BY created_at DESC
LIMIT $1`
	return r.query(ctx, query, qualityReportWindow)
}

func (r *PGRepo) query(ctx context.Context, query string, args ...any) ([]Feedback, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Feedback{}
	for rows.Next() {
		var f Feedback
		var overall, summary, keywords, recommendations sql.NullInt32
		var summaryHelpful, keywordsHelpful, recommendationsHelpful sql.NullBool
		var comment sql.NullString
		if err := rows.Scan(
			&f.ID,
			&f.AnalysisID,
			&overall,
			&summary,
			&keywords,
			&recommendations,
			&summaryHelpful,
			&keywordsHelpful,
			&recommendationsHelpful,
			&comment,
			&f.Quick,
			&f.CreatedAt,
		); err != nil {
			return nil, err
		}
		f.OverallRating = int(overall.Int32)
		f.SummaryRating = int(summary.Int32)
		f.KeywordsRating = int(keywords.Int32)
		f.RecommendationsRating = int(recommendations.Int32)
		f.SummaryHelpful = boolPtr(summaryHelpful)
		f.KeywordsHelpful = boolPtr(keywordsHelpful)
		f.RecommendationsHelpful = boolPtr(recommendationsHelpful)
		f.Comment = comment.String
		out = append(out, f)
	}
	return out, rows.Err()
}

func nullRating(v int) sql.NullInt32 {
	if v == 0 {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(v), Valid: true}
}

func nullBool(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}

func boolPtr(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Bool
	return &b
}

var _ Repo = (*PGRepo)(nil)
