package services

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/yangezz/paste_service/internal/dto"
	"github.com/yangezz/paste_service/pkg/utils"
)

const (
	trendingBaseURL = "https://github.com"
	// trending pages run a few hundred KB; anything past this is garbage.
	maxTrendingBody = 4 << 20
)

type ToolService interface {
	TrendingRepos(ctx context.Context, since string) ([]dto.TrendingRepo, error)
}

type toolService struct {
	client *http.Client
}

func NewToolService() ToolService {
	return &toolService{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// TrendingRepos scrapes the GitHub trending page for the given window
// (daily, weekly or monthly).
func (s *toolService) TrendingRepos(ctx context.Context, since string) ([]dto.TrendingRepo, error) {
	switch since {
	case "daily", "weekly", "monthly":
	case "":
		since = "daily"
	default:
		return nil, invalidf("since must be daily, weekly or monthly")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trendingBaseURL+"/trending?since="+since, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch trending: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch trending: unexpected status %d", resp.StatusCode)
	}

	body, err := utils.ReadAllLimit(resp.Body, maxTrendingBody)
	if err != nil {
		return nil, fmt.Errorf("read trending page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse trending page: %w", err)
	}

	var repos []dto.TrendingRepo
	doc.Find("main .Box div[data-hpc] > article").Each(func(_ int, sel *goquery.Selection) {
		link := sel.Find("h2 a")
		href, _ := link.Attr("href")
		title := squash(link.Text())
		if href == "" || title == "" {
			return
		}
		repos = append(repos, dto.TrendingRepo{
			ID:    href,
			Title: title,
			URL:   trendingBaseURL + href,
			Extra: dto.TrendingRepoExtra{
				Desc:      squash(sel.ChildrenFiltered("p").Text()),
				Star:      squash(sel.Find(`[href$="stargazers"]`).Text()),
				Fork:      squash(sel.Find(`[href$="forks"]`).Text()),
				TodayStar: squash(strings.ReplaceAll(sel.Find(".d-inline-block.float-sm-right").Text(), "stars today", "")),
				CodeLang:  squash(sel.Find(`[itemprop="programmingLanguage"]`).Text()),
			},
		})
	})
	return repos, nil
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
