package web

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/deemkeen/disclosures/catalog"
	"github.com/deemkeen/disclosures/domain"
	"github.com/deemkeen/disclosures/progress"
	"github.com/deemkeen/disclosures/richtext"
	"github.com/deemkeen/disclosures/util"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Site holds what the HTTP handlers share.
type Site struct {
	Conf     *util.AppConfig
	Catalog  *catalog.Service
	Sessions *SessionRegistry
}

type PageLink struct {
	Id      int
	Title   string
	Current bool
}

type FilterOption struct {
	Id      string
	Name    string
	Checked bool
}

type BlockView struct {
	Id          int
	Title       string
	ContentHTML template.HTML // sanitized against richtext.OuterFormats
	Status      string
	Badge       string
	HasScript   bool
	Read        bool
	Expanded    bool
}

type GroupView struct {
	Id       string
	Name     string
	Color    string
	Expanded bool
	Done     bool
	Read     int
	Total    int
	Blocks   []BlockView
}

type PageData struct {
	Title       string
	Host        string
	SSHPort     int
	Version     string
	Pages       []PageLink
	Page        domain.Page
	View        string
	OtherView   string
	Search      string
	Categories  []FilterOption
	Groups      []GroupView
	Tab         *BlockView
	TabIndex    int
	TabCount    int
	HasPrev     bool
	HasNext     bool
	Read        int
	Total       int
	Completed   bool
	Empty       bool
	QueryString template.URL
}

// readerQuery is the reader state a browser carries in the URL.
type readerQuery struct {
	view   domain.ViewMode
	filter progress.Filter
	tab    int
}

func parseReaderQuery(c *gin.Context, fallback domain.ViewMode) readerQuery {
	q := readerQuery{view: fallback}
	if v, ok := domain.ParseViewMode(c.Query("view")); ok {
		q.view = v
	}
	q.filter.Search = c.Query("q")
	for _, id := range c.QueryArray("c") {
		if id != "" {
			q.filter.ToggleCategory(id)
		}
	}
	if t, err := strconv.Atoi(c.Query("tab")); err == nil && t > 0 {
		q.tab = t
	}
	return q
}

func (q readerQuery) values() url.Values {
	v := url.Values{}
	v.Set("view", string(q.view))
	if q.filter.Search != "" {
		v.Set("q", q.filter.Search)
	}
	for id := range q.filter.Categories {
		v.Add("c", id)
	}
	if q.tab > 0 {
		v.Set("tab", strconv.Itoa(q.tab))
	}
	return v
}

func (s *Site) host() string {
	return s.Conf.Conf.Host
}

// sessionID returns the browser's progress session, setting the cookie when
// a new one is minted.
func (s *Site) sessionID(c *gin.Context) uuid.UUID {
	raw, _ := c.Cookie(SessionCookie)
	id, created := s.Sessions.Resolve(raw)
	if created {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id.String(), int(sessionTTL.Seconds()), "/", "", false, true)
	}
	return id
}

func (s *Site) pageContent(c *gin.Context) (domain.PageContent, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "base.html", gin.H{"Title": "Bulunamadı", "Error": "Sayfa bulunamadı"})
		return domain.PageContent{}, false
	}
	pc, err := s.Catalog.PageContent(id)
	if err != nil {
		log.Printf("Page %d not found: %v", id, err)
		c.HTML(http.StatusNotFound, "base.html", gin.H{"Title": "Bulunamadı", "Error": "Sayfa bulunamadı"})
		return domain.PageContent{}, false
	}
	return pc, true
}

func (s *Site) HandleIndex(c *gin.Context) {
	c.Redirect(http.StatusFound, fmt.Sprintf("/pages/%d", s.Conf.Conf.DefaultPageId))
}

// HandlePage renders a page for a reader. Clients asking for JSON get the
// page content instead.
func (s *Site) HandlePage(c *gin.Context) {
	if !IsHTMLRequest(c.GetHeader("Accept")) {
		s.HandleAPIPage(c)
		return
	}
	pc, ok := s.pageContent(c)
	if !ok {
		return
	}
	q := parseReaderQuery(c, s.Catalog.ViewMode())
	id := s.sessionID(c)

	var data PageData
	s.Sessions.With(id, pc, func(sess *progress.Session) {
		data = s.buildPageData(pc, q, sess)
	})
	c.HTML(http.StatusOK, "page.html", data)
}

func (s *Site) buildPageData(pc domain.PageContent, q readerQuery, sess *progress.Session) PageData {
	now := s.Catalog.Now()
	data := PageData{
		Title:   pc.Page.Title,
		Host:    s.host(),
		SSHPort: s.Conf.Conf.SshPort,
		Version: util.GetVersion(),
		Page:    pc.Page,
		View:    string(q.view),
		Search:  q.filter.Search,
	}
	data.OtherView = string(q.view.Toggle())

	for _, p := range s.Catalog.Pages() {
		data.Pages = append(data.Pages, PageLink{Id: p.Id, Title: p.Title, Current: p.Id == pc.Page.Id})
	}
	for _, g := range pc.Groups {
		data.Categories = append(data.Categories, FilterOption{
			Id: g.Category.Id, Name: g.Category.Name, Checked: q.filter.HasCategory(g.Category.Id),
		})
	}

	groups := q.filter.Apply(pc.Groups)
	data.Empty = len(groups) == 0
	for _, g := range groups {
		read, total := sess.CategoryProgress(g.Category.Id)
		gv := GroupView{
			Id:       g.Category.Id,
			Name:     g.Category.Name,
			Color:    g.Category.Color,
			Expanded: sess.IsCategoryExpanded(g.Category.Id),
			Done:     sess.CategoryDone(g.Category.Id),
			Read:     read,
			Total:    total,
		}
		for _, b := range g.Blocks {
			gv.Blocks = append(gv.Blocks, blockView(b, now, sess))
		}
		data.Groups = append(data.Groups, gv)
	}

	if q.view == domain.ViewTabs {
		var flat []BlockView
		for _, g := range data.Groups {
			flat = append(flat, g.Blocks...)
		}
		tabs := progress.Tabs{Active: q.tab}
		tabs.SetCount(len(flat))
		if len(flat) > 0 {
			data.Tab = &flat[tabs.Active]
		}
		data.TabIndex = tabs.Active
		data.TabCount = tabs.Count()
		data.HasPrev = tabs.HasPrev()
		data.HasNext = tabs.HasNext()
	}

	data.Read, data.Total = sess.Progress()
	data.Completed = sess.Completed()
	data.QueryString = template.URL(q.values().Encode())
	return data
}

func blockView(b domain.InformationBlock, now time.Time, sess *progress.Session) BlockView {
	status := b.Status(now)
	return BlockView{
		Id:          b.Id,
		Title:       b.Title,
		ContentHTML: template.HTML(richtext.OuterFormats.Sanitize(b.ContentHTML)),
		Status:      status.String(),
		Badge:       status.Badge(),
		HasScript:   b.HasScript(),
		Read:        sess.IsRead(b.Id),
		Expanded:    sess.IsExpanded(b.Id),
	}
}

// pageURL is the reader URL for pc with q applied.
func pageURL(pageId int, q readerQuery) string {
	return fmt.Sprintf("/pages/%d?%s", pageId, q.values().Encode())
}

// HandleToggleRead marks or unmarks a block and sends the browser back to the
// reader. In the tabs view the next unread block becomes the active tab.
func (s *Site) HandleToggleRead(c *gin.Context) {
	pc, ok := s.pageContent(c)
	if !ok {
		return
	}
	blockId, err := strconv.Atoi(c.Param("blockId"))
	if err != nil {
		c.HTML(http.StatusBadRequest, "base.html", gin.H{"Title": "Hata", "Error": "Geçersiz blok"})
		return
	}
	q := parseReaderQuery(c, s.Catalog.ViewMode())
	id := s.sessionID(c)

	s.Sessions.With(id, pc, func(sess *progress.Session) {
		visible := q.filter.Visible(pc.Groups)
		t := sess.ToggleRead(blockId, visible)
		if q.view == domain.ViewTabs && t.HasNext {
			q.tab = indexOf(visible, t.Next)
		}
	})
	c.Redirect(http.StatusSeeOther, pageURL(pc.Page.Id, q)+"#block-"+strconv.Itoa(blockId))
}

// HandleToggleBlock opens or closes a block.
func (s *Site) HandleToggleBlock(c *gin.Context) {
	s.sessionAction(c, func(sess *progress.Session) {
		if blockId, err := strconv.Atoi(c.Param("blockId")); err == nil {
			sess.ToggleItem(blockId)
		}
	})
}

// HandleToggleCategory opens or closes a category section.
func (s *Site) HandleToggleCategory(c *gin.Context) {
	s.sessionAction(c, func(sess *progress.Session) {
		sess.ToggleCategory(c.Param("categoryId"))
	})
}

// HandleResetProgress is the only action of the completion dialog.
func (s *Site) HandleResetProgress(c *gin.Context) {
	s.sessionAction(c, func(sess *progress.Session) {
		sess.Reset()
	})
}

func (s *Site) sessionAction(c *gin.Context, fn func(*progress.Session)) {
	pc, ok := s.pageContent(c)
	if !ok {
		return
	}
	q := parseReaderQuery(c, s.Catalog.ViewMode())
	s.Sessions.With(s.sessionID(c), pc, fn)
	c.Redirect(http.StatusSeeOther, pageURL(pc.Page.Id, q))
}

func indexOf(items []progress.Item, id int) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return 0
}

// tabURL links to tab i with the rest of the reader state unchanged.
func tabURL(pageId int, query template.URL, i int) string {
	v, _ := url.ParseQuery(string(query))
	v.Set("tab", strconv.Itoa(i))
	return fmt.Sprintf("/pages/%d?%s", pageId, v.Encode())
}

// blockContext carries what the block partial needs to build its form actions.
type blockContext struct {
	BlockView
	PageId int
	Query  template.URL
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"tabURL": tabURL,
		"add":    func(a, b int) int { return a + b },
		"blockCtx": func(d PageData, b BlockView) blockContext {
			return blockContext{BlockView: b, PageId: d.Page.Id, Query: d.QueryString}
		},
	}
}
