package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/sprintburn/internal/app"
	"github.com/alexanderramin/sprintburn/internal/contract"
	"github.com/alexanderramin/sprintburn/internal/domain"
	"github.com/alexanderramin/sprintburn/internal/jira"
	"github.com/alexanderramin/sprintburn/internal/repository"
	"github.com/alexanderramin/sprintburn/internal/service"
)

type handlers struct {
	deps Deps
}

func (h *handlers) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *handlers) listBoards(c *gin.Context) {
	boards, err := h.deps.Boards.Boards(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]boardJSON, len(boards))
	for i, b := range boards {
		out[i] = boardJSON(b)
	}
	c.JSON(http.StatusOK, out)
}

func (h *handlers) listSprints(c *gin.Context) {
	boardID, ok := pathID(c)
	if !ok {
		return
	}
	var states []string
	if s := c.Query("state"); s != "" {
		states = strings.Split(s, ",")
	}
	sprints, err := h.deps.Boards.Sprints(c.Request.Context(), boardID, states...)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]sprintJSON, len(sprints))
	for i, s := range sprints {
		out[i] = toSprintJSON(s)
	}
	c.JSON(http.StatusOK, out)
}

func (h *handlers) sprintSeries(c *gin.Context) {
	sprintID, ok := pathID(c)
	if !ok {
		return
	}
	req := contract.NewSeriesRequest(sprintID)
	if v := c.Query("spent_by"); v != "" {
		req.SpentBy = domain.SpentBy(v)
	}
	if v := c.Query("remaining_mode"); v != "" {
		req.RemainingMode = domain.RemainingMode(v)
	}
	if h.deps.Now != nil {
		now := h.deps.Now()
		req.Now = &now
	}
	save, _ := strconv.ParseBool(c.Query("save"))
	if save && h.deps.Runs == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "run storage is not configured"})
		return
	}

	resp, err := h.deps.Series.ComputeDailySeries(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	out := toSeriesJSON(resp)
	if save {
		run, err := h.deps.Runs.Save(c.Request.Context(), resp)
		if err != nil {
			writeError(c, err)
			return
		}
		out.RunID = run.ID
	}
	c.JSON(http.StatusOK, out)
}

func (h *handlers) listRuns(c *gin.Context) {
	if h.deps.Runs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run storage is not configured"})
		return
	}
	var sprintID *int64
	if s := c.Query("sprint"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid sprint %q", s)})
			return
		}
		sprintID = &id
	}
	runs, err := h.deps.Runs.List(c.Request.Context(), sprintID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]runJSON, len(runs))
	for i, r := range runs {
		out[i] = toRunJSON(r, false)
	}
	c.JSON(http.StatusOK, out)
}

func (h *handlers) getRun(c *gin.Context) {
	if h.deps.Runs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run storage is not configured"})
		return
	}
	run, err := h.deps.Runs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRunJSON(run, true))
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid id %q", c.Param("id"))})
		return 0, false
	}
	return id, true
}

// writeError maps domain and collaborator failures onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL"

	var serr *app.SeriesError
	switch {
	case errors.As(err, &serr):
		code = string(serr.Code)
		status = http.StatusBadRequest
		if serr.Code == app.SeriesErrMissingWindowStart {
			status = http.StatusUnprocessableEntity
		}
	case errors.Is(err, service.ErrNoActiveSprint):
		status, code = http.StatusNotFound, "NO_ACTIVE_SPRINT"
	case errors.Is(err, jira.ErrNotFound), errors.Is(err, repository.ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, jira.ErrUnauthorized):
		status, code = http.StatusBadGateway, "UPSTREAM_UNAUTHORIZED"
	case errors.Is(err, app.ErrCollaboratorUnavailable):
		status, code = http.StatusBadGateway, "UPSTREAM_UNAVAILABLE"
	case errors.Is(err, service.ErrInvalidSprintState):
		status, code = http.StatusBadRequest, "INVALID_REQUEST"
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}
