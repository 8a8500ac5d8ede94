package documents

import (
	"context"
	"math"
	"strings"
)

// Compare loads two documents and contrasts the keywords that keywords finds in
// their extracted text. Similarity is the Jaccard index of the two keyword sets.
func (s *Service) Compare(ctx context.Context, id1, id2 string, keywords KeywordsFunc) (Comparison, error) {
	first, err := s.documentKeywords(ctx, id1, keywords)
	if err != nil {
		return Comparison{}, err
	}
	second, err := s.documentKeywords(ctx, id2, keywords)
	if err != nil {
		return Comparison{}, err
	}

	cmp := compareKeywords(first, second)
	cmp.DocumentID1 = strings.TrimSpace(id1)
	cmp.DocumentID2 = strings.TrimSpace(id2)
	return cmp, nil
}

func (s *Service) documentKeywords(ctx context.Context, id string, keywords KeywordsFunc) ([]string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	text, err := s.Text(ctx, doc)
	if err != nil {
		return nil, err
	}
	return keywords(ctx, doc, text)
}

func compareKeywords(first, second []string) Comparison {
	a, b := foldKeywords(first), foldKeywords(second)
	inB := make(map[string]struct{}, len(b))
	for _, k := range b {
		inB[k] = struct{}{}
	}
	inA := make(map[string]struct{}, len(a))
	for _, k := range a {
		inA[k] = struct{}{}
	}

	cmp := Comparison{CommonKeywords: []string{}, UniqueToDoc1: []string{}, UniqueToDoc2: []string{}}
	for _, k := range a {
		if _, ok := inB[k]; ok {
			cmp.CommonKeywords = append(cmp.CommonKeywords, k)
		} else {
			cmp.UniqueToDoc1 = append(cmp.UniqueToDoc1, k)
		}
	}
	for _, k := range b {
		if _, ok := inA[k]; !ok {
			cmp.UniqueToDoc2 = append(cmp.UniqueToDoc2, k)
		}
	}

	common := len(cmp.CommonKeywords)
	if union := len(a) + len(b) - common; union > 0 {
		cmp.SimilarityScore = math.Round(float64(common)/float64(union)*100) / 100
	}
	return cmp
}

// foldKeywords lowercases and trims keywords, dropping blanks and repeats while
// keeping first-seen order.
func foldKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, k := range in {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
