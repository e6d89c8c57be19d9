package web

import (
	"fmt"
	"log"
	"net/http"
	"sort"

	"github.com/deemkeen/disclosures/catalog"
	"github.com/deemkeen/disclosures/domain"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/feeds"
)

const feedExcerptWidth = 280

// recentFeed lists active blocks that are new or updated, most recently
// changed first.
func (s *Site) recentFeed() *feeds.Feed {
	now := s.Catalog.Now()
	base := s.baseURL()

	feed := &feeds.Feed{
		Title:       "Zorunlu Bilgiler",
		Link:        &feeds.Link{Href: base + "/"},
		Description: "Yeni ve güncellenen zorunlu bilgiler",
		Created:     now,
	}

	blocks := s.Catalog.ListBlocks(catalog.BlockQuery{Active: catalog.ActiveOnly})
	var recent []domain.InformationBlock
	for _, b := range blocks {
		if b.Status(now) != domain.StatusNone {
			recent = append(recent, b)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].UpdatedAt.After(recent[j].UpdatedAt.Time)
	})

	pageId := s.Conf.Conf.DefaultPageId
	for _, b := range recent {
		status := b.Status(now)
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          fmt.Sprintf("%s/blocks/%d", base, b.Id),
			Title:       fmt.Sprintf("[%s] %s", status.Badge(), b.Title),
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/pages/%d#block-%d", base, pageId, b.Id)},
			Description: catalog.Excerpt(b, feedExcerptWidth),
			Created:     b.CreatedAt.Time,
			Updated:     b.UpdatedAt.Time,
		})
		if b.UpdatedAt.After(feed.Updated) {
			feed.Updated = b.UpdatedAt.Time
		}
	}
	return feed
}

func (s *Site) baseURL() string {
	return fmt.Sprintf("http://%s:%d", s.Conf.Conf.Host, s.Conf.Conf.HttpPort)
}

func (s *Site) HandleAtom(c *gin.Context) {
	atom, err := s.recentFeed().ToAtom()
	if err != nil {
		log.Printf("Failed to render atom feed: %v", err)
		c.String(http.StatusInternalServerError, "feed error")
		return
	}
	c.Data(http.StatusOK, "application/atom+xml; charset=utf-8", []byte(atom))
}

func (s *Site) HandleRSS(c *gin.Context) {
	rss, err := s.recentFeed().ToRss()
	if err != nil {
		log.Printf("Failed to render rss feed: %v", err)
		c.String(http.StatusInternalServerError, "feed error")
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}
