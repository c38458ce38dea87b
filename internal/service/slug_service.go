package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"blogcms/internal/repository"
)

var (
	slugStripPattern    = regexp.MustCompile(`[^a-z0-9\s_-]+`)
	slugCollapsePattern = regexp.MustCompile(`[\s_-]+`)
)

// Slugify - чистая функция: заголовок -> URL-безопасный слаг.
// Никакого I/O, результат детерминирован.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugStripPattern.ReplaceAllString(slug, "")
	slug = slugCollapsePattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

type SlugResolver interface {
	EnsureUnique(ctx context.Context, baseSlug, excludeID string) (string, error)
}

type slugResolver struct {
	postRepo repository.PostRepository
}

func NewSlugResolver(postRepo repository.PostRepository) SlugResolver {
	return &slugResolver{postRepo: postRepo}
}

// EnsureUnique probes the store for base, base-1, base-2, ...
// The holder equal to excludeID does not count as a collision
// (update-in-place case). The counter strictly increases and the
// store is finite, so the loop terminates.
func (r *slugResolver) EnsureUnique(ctx context.Context, baseSlug, excludeID string) (string, error) {
	if baseSlug == "" {
		baseSlug = "post"
	}

	candidate := baseSlug
	for counter := 1; ; counter++ {
		holderID, err := r.postRepo.FindIDBySlug(ctx, candidate)
		if err != nil {
			return "", err
		}

		if holderID == "" || holderID == excludeID {
			return candidate, nil
		}

		candidate = fmt.Sprintf("%s-%d", baseSlug, counter)
	}
}
