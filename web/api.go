package web

import (
	"net/http"
	"strconv"

	"github.com/deemkeen/disclosures/domain"
	"github.com/deemkeen/disclosures/progress"
	"github.com/deemkeen/disclosures/richtext"
	"github.com/gin-gonic/gin"
)

type apiBlock struct {
	Id           int                    `json:"id"`
	Title        string                 `json:"title"`
	ContentHTML  string                 `json:"contentHtml"`
	CategoryId   string                 `json:"kategoriId"`
	DisplayOrder int                    `json:"displayOrder"`
	CreatedAt    domain.Date            `json:"createdAt"`
	UpdatedAt    domain.Date            `json:"updatedAt"`
	Status       string                 `json:"status,omitempty"`
	Scripts      []richtext.ScriptBlock `json:"scripts"`
}

type apiGroup struct {
	Category domain.Category `json:"category"`
	Blocks   []apiBlock      `json:"blocks"`
}

type apiPage struct {
	Page   domain.Page `json:"page"`
	Groups []apiGroup  `json:"groups"`
	Total  int         `json:"total"`
}

type apiProgress struct {
	progress.Snapshot
	Read  int `json:"read"`
	Total int `json:"total"`
}

type apiToggle struct {
	Block             int         `json:"blockId"`
	NowRead           bool        `json:"nowRead"`
	Next              *int        `json:"nextId"`
	CategoryCollapsed bool        `json:"categoryCollapsed"`
	Completed         bool        `json:"completed"`
	Progress          apiProgress `json:"progress"`
}

func progressOf(sess *progress.Session) apiProgress {
	read, total := sess.Progress()
	return apiProgress{Snapshot: sess.Snapshot(), Read: read, Total: total}
}

func (s *Site) apiPageContent(c *gin.Context) (domain.PageContent, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page id"})
		return domain.PageContent{}, false
	}
	pc, err := s.Catalog.PageContent(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return domain.PageContent{}, false
	}
	return pc, true
}

func (s *Site) HandleAPIPages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pages": s.Catalog.Pages()})
}

func (s *Site) HandleAPICategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": s.Catalog.Categories(),
		"counts":     s.Catalog.CategoryCounts(),
	})
}

// HandleAPIPage returns the active blocks of a page grouped by category,
// with script blocks extracted from each block's content.
func (s *Site) HandleAPIPage(c *gin.Context) {
	pc, ok := s.apiPageContent(c)
	if !ok {
		return
	}
	now := s.Catalog.Now()
	resp := apiPage{Page: pc.Page, Groups: []apiGroup{}}
	for _, g := range pc.Groups {
		ag := apiGroup{Category: g.Category, Blocks: []apiBlock{}}
		for _, b := range g.Blocks {
			scripts := richtext.Parse(b.ContentHTML).Scripts()
			if scripts == nil {
				scripts = []richtext.ScriptBlock{}
			}
			ag.Blocks = append(ag.Blocks, apiBlock{
				Id:           b.Id,
				Title:        b.Title,
				ContentHTML:  b.ContentHTML,
				CategoryId:   b.CategoryId,
				DisplayOrder: b.DisplayOrder,
				CreatedAt:    b.CreatedAt,
				UpdatedAt:    b.UpdatedAt,
				Status:       b.Status(now).String(),
				Scripts:      scripts,
			})
			resp.Total++
		}
		resp.Groups = append(resp.Groups, ag)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Site) HandleAPIProgress(c *gin.Context) {
	pc, ok := s.apiPageContent(c)
	if !ok {
		return
	}
	var resp apiProgress
	s.Sessions.With(s.sessionID(c), pc, func(sess *progress.Session) {
		resp = progressOf(sess)
	})
	c.JSON(http.StatusOK, resp)
}

// HandleAPIToggleRead toggles a block's read mark. The q and c query
// parameters narrow the visible sequence the same way the reader filters do.
func (s *Site) HandleAPIToggleRead(c *gin.Context) {
	pc, ok := s.apiPageContent(c)
	if !ok {
		return
	}
	blockId, err := strconv.Atoi(c.Param("blockId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid block id"})
		return
	}
	q := parseReaderQuery(c, domain.ViewCategorized)

	var resp apiToggle
	s.Sessions.With(s.sessionID(c), pc, func(sess *progress.Session) {
		t := sess.ToggleRead(blockId, q.filter.Visible(pc.Groups))
		resp = apiToggle{
			Block:             t.ID,
			NowRead:           t.NowRead,
			CategoryCollapsed: t.CategoryCollapsed,
			Completed:         t.Completed,
			Progress:          progressOf(sess),
		}
		if t.HasNext {
			next := t.Next
			resp.Next = &next
		}
	})
	c.JSON(http.StatusOK, resp)
}

func (s *Site) HandleAPIResetProgress(c *gin.Context) {
	pc, ok := s.apiPageContent(c)
	if !ok {
		return
	}
	var resp apiProgress
	s.Sessions.With(s.sessionID(c), pc, func(sess *progress.Session) {
		sess.Reset()
		resp = progressOf(sess)
	})
	c.JSON(http.StatusOK, resp)
}
