package editor

import (
	"bytes"
	"errors"

	"table-editor/core/changeset"
	"table-editor/core/logger"
	"table-editor/core/table"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

const (
	// HeaderWorkspace selects a workspace without a session cookie.
	HeaderWorkspace = "X-Workspace-ID"
	sessionKey      = "workspace"
)

// Handler handles HTTP requests for the table editor.
type Handler struct {
	service  *Service
	sessions *session.Store
}

// NewHandler creates a new HTTP handler. sessions may be nil, in which case
// workspaces are only selected through the X-Workspace-ID header.
func NewHandler(service *Service, sessions *session.Store) *Handler {
	return &Handler{service: service, sessions: sessions}
}

// RegisterRoutes registers the editor routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/editor", fiber.StatusSeeOther)
	})

	page := app.Group("/editor")
	page.Get("/", h.HandlePage)
	page.Post("/review", h.HandleReviewForm)
	page.Post("/confirm", h.HandleConfirmForm)
	page.Post("/cancel", h.HandleCancelForm)

	api := app.Group("/api/editor")
	api.Get("/snapshot", h.HandleSnapshot)
	api.Post("/review", h.HandleReview)
	api.Post("/confirm", h.HandleConfirm)
	api.Post("/cancel", h.HandleCancel)
	api.Get("/records", h.HandleRecords)
	api.Get("/history", h.HandleHistory)
	api.Get("/history/*", h.HandleHistoryRecord)
}

// workspace resolves the workspace of the request from the header or the session cookie.
func (h *Handler) workspace(c *fiber.Ctx) (*Workspace, error) {
	id := c.Get(HeaderWorkspace)

	var sess *session.Session
	if id == "" && h.sessions != nil {
		s, err := h.sessions.Get(c)
		if err != nil {
			return nil, err
		}
		sess = s
		id, _ = sess.Get(sessionKey).(string)
	}

	ws := h.service.Workspace(id)
	if sess != nil {
		if ws.ID != id {
			sess.Set(sessionKey, ws.ID)
		}
		if err := sess.Save(); err != nil {
			return nil, err
		}
	}
	c.Set(HeaderWorkspace, ws.ID)
	return ws, nil
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrStale), errors.Is(err, ErrNothingPending), errors.Is(err, ErrNotLoaded):
		return fiber.StatusConflict
	case errors.Is(err, changeset.ErrIndexOutOfRange),
		errors.Is(err, changeset.ErrPKImmutable),
		errors.Is(err, changeset.ErrUnknownColumn):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrArchiveDisabled):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func errorJSON(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
}

func postLookup(c *fiber.Ctx) FormLookup {
	args := c.Request().PostArgs()
	return func(key string) (string, bool) {
		if !args.Has(key) {
			return "", false
		}
		return string(args.Peek(key)), true
	}
}

func (h *Handler) render(c *fiber.Ctx, status int, page PageView) error {
	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "editor.html", page); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

func (h *Handler) redirect(c *fiber.Ctx) error {
	return c.Redirect("/editor", fiber.StatusSeeOther)
}

// HandlePage renders the editor grid.
func (h *Handler) HandlePage(c *fiber.Ctx) error {
	ws, err := h.workspace(c)
	if err != nil {
		return err
	}

	ws.Lock()
	defer ws.Unlock()

	// A failed load is shown as a flash message
	_ = h.service.Load(c.Context(), ws)
	return h.render(c, fiber.StatusOK, buildPage(h.service.Config(), ws))
}

// formAction runs fn on the locked workspace and redirects back to the grid.
// Stale submissions render the current grid with 409.
func (h *Handler) formAction(c *fiber.Ctx, fn func(ws *Workspace, instance int) error) error {
	l := logger.WithRayID(h.service.logger, c)
	lookup := postLookup(c)

	instance, err := ParseInstance(lookup)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	ws, err := h.workspace(c)
	if err != nil {
		return err
	}

	ws.Lock()
	defer ws.Unlock()

	if err := fn(ws, instance); err != nil {
		switch {
		case errors.Is(err, ErrStale):
			l.Warn("Rejected stale editor submission",
				zap.Int("instance", instance),
				zap.Int("current", ws.InstanceID),
			)
			ws.SetFlash(FlashError, "This grid is out of date and was reloaded. Please re-apply your edits.")
			return h.render(c, fiber.StatusConflict, buildPage(h.service.Config(), ws))
		case errors.Is(err, ErrNothingPending), errors.Is(err, ErrNotLoaded):
			ws.SetFlash(FlashWarning, err.Error())
		case errors.Is(err, ErrNoChanges):
		default:
			l.Warn("Editor action failed", zap.Error(err))
		}
	}
	return h.redirect(c)
}

// HandleReviewForm reviews a grid submission.
func (h *Handler) HandleReviewForm(c *fiber.Ctx) error {
	lookup := postLookup(c)
	return h.formAction(c, func(ws *Workspace, instance int) error {
		if ws.Original == nil {
			return ErrNotLoaded
		}
		changes := DecodeForm(ws.Original, h.service.Config().BlankRows, lookup)
		_, err := h.service.Review(ws, changes, instance)
		return err
	})
}

// HandleConfirmForm applies the pending changes.
func (h *Handler) HandleConfirmForm(c *fiber.Ctx) error {
	return h.formAction(c, func(ws *Workspace, instance int) error {
		_, err := h.service.Confirm(c.Context(), ws, instance)
		return err
	})
}

// HandleCancelForm drops the pending changes.
func (h *Handler) HandleCancelForm(c *fiber.Ctx) error {
	return h.formAction(c, func(ws *Workspace, instance int) error {
		return h.service.Cancel(ws, instance)
	})
}

// StateResponse is the JSON view of a workspace.
type StateResponse struct {
	WorkspaceID      string                  `json:"workspace_id"`
	Instance         int                     `json:"instance"`
	InstanceKey      string                  `json:"instance_key"`
	Table            string                  `json:"table"`
	PK               string                  `json:"pk"`
	PKGenerated      bool                    `json:"pk_generated"`
	Snapshot         *table.Snapshot         `json:"snapshot"`
	ShowConfirmation bool                    `json:"show_confirmation"`
	Pending          *changeset.ChangeSet    `json:"pending,omitempty"`
	Summary          *changeset.Summary      `json:"summary,omitempty"`
	Highlights       [][]changeset.CellState `json:"highlights,omitempty"`
	LastResult       *changeset.Result       `json:"last_result,omitempty"`
	Flash            *Flash                  `json:"flash,omitempty"`
}

// state builds the JSON view. It pops the flash message.
// The caller must hold the workspace lock.
func (h *Handler) state(ws *Workspace) StateResponse {
	cfg := h.service.Config()
	resp := StateResponse{
		WorkspaceID:      ws.ID,
		Instance:         ws.InstanceID,
		InstanceKey:      cfg.InstanceKey(ws.InstanceID),
		Table:            cfg.Table,
		PK:               cfg.PKColumn,
		PKGenerated:      cfg.PKGenerated,
		Snapshot:         ws.Original,
		ShowConfirmation: ws.ShowConfirmation,
		LastResult:       ws.LastResult,
		Flash:            ws.PopFlash(),
	}
	if ws.ShowConfirmation && !ws.Pending.IsEmpty() {
		summary := ws.Pending.Counts()
		resp.Pending = ws.Pending
		resp.Summary = &summary
		resp.Highlights = changeset.HighlightEdits(ws.Pending)
	}
	return resp
}

// HandleSnapshot returns the workspace state, loading the table on first use.
// @Summary Get Editor State
// @Description Returns the snapshot being edited, the pending change set and the last apply result of the workspace.
// @Tags editor
// @Security ApiKeyAuth
// @Produce json
// @Param X-Workspace-ID header string false "Workspace ID"
// @Success 200 {object} StateResponse
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/editor/snapshot [get]
func (h *Handler) HandleSnapshot(c *fiber.Ctx) error {
	ws, err := h.workspace(c)
	if err != nil {
		return err
	}

	ws.Lock()
	defer ws.Unlock()

	if err := h.service.Load(c.Context(), ws); err != nil {
		ws.PopFlash()
		return errorJSON(c, err)
	}
	return c.JSON(h.state(ws))
}

// HandleReview reviews a change description.
// @Summary Review Changes
// @Description Extracts additions, edits and deletions from a sparse change description against the workspace snapshot.
// @Tags editor
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param X-Workspace-ID header string false "Workspace ID"
// @Param instance query int false "Grid instance the changes were made on"
// @Param changes body changeset.EditorChanges true "Change description"
// @Success 200 {object} StateResponse
// @Failure 400 {object} map[string]string "Invalid change description"
// @Failure 409 {object} map[string]string "Stale grid instance"
// @Router /api/editor/review [post]
func (h *Handler) HandleReview(c *fiber.Ctx) error {
	changes, err := changeset.DecodeChanges(bytes.NewReader(c.Body()))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	ws, err := h.workspace(c)
	if err != nil {
		return err
	}

	ws.Lock()
	defer ws.Unlock()

	if _, err := h.service.Review(ws, changes, c.QueryInt("instance", AnyInstance)); err != nil && !errors.Is(err, ErrNoChanges) {
		ws.PopFlash()
		return errorJSON(c, err)
	}
	return c.JSON(h.state(ws))
}

// HandleConfirm applies the pending change set.
// @Summary Confirm Changes
// @Description Writes the pending change set: one delete, one update per edited row, one insert. Failed operations are listed in last_result.errors.
// @Tags editor
// @Security ApiKeyAuth
// @Produce json
// @Param X-Workspace-ID header string false "Workspace ID"
// @Param instance query int false "Grid instance the changes were reviewed on"
// @Success 200 {object} StateResponse
// @Failure 409 {object} map[string]string "Nothing pending or stale grid instance"
// @Router /api/editor/confirm [post]
func (h *Handler) HandleConfirm(c *fiber.Ctx) error {
	ws, err := h.workspace(c)
	if err != nil {
		return err
	}

	ws.Lock()
	defer ws.Unlock()

	if _, err := h.service.Confirm(c.Context(), ws, c.QueryInt("instance", AnyInstance)); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(h.state(ws))
}

// HandleCancel drops the pending change set.
// @Summary Cancel Changes
// @Description Drops the pending change set and reverts the grid.
// @Tags editor
// @Security ApiKeyAuth
// @Produce json
// @Param X-Workspace-ID header string false "Workspace ID"
// @Param instance query int false "Grid instance the changes were reviewed on"
// @Success 200 {object} StateResponse
// @Failure 409 {object} map[string]string "Nothing pending or stale grid instance"
// @Router /api/editor/cancel [post]
func (h *Handler) HandleCancel(c *fiber.Ctx) error {
	ws, err := h.workspace(c)
	if err != nil {
		return err
	}

	ws.Lock()
	defer ws.Unlock()

	if err := h.service.Cancel(ws, c.QueryInt("instance", AnyInstance)); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(h.state(ws))
}

// HandleRecords returns the current rows of the table.
// @Summary Current Records
// @Description Returns the first rows of the table in primary key order, shared between sessions for a short time.
// @Tags editor
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} table.Snapshot
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/editor/records [get]
func (h *Handler) HandleRecords(c *fiber.Ctx) error {
	snap, err := h.service.Records(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to fetch records", zap.Error(err))
		return errorJSON(c, err)
	}
	return c.JSON(snap)
}

// HandleHistory lists archived change sets.
// @Summary Change History
// @Description Lists the keys of the newest archived change sets of the table.
// @Tags editor
// @Security ApiKeyAuth
// @Produce json
// @Param limit query int false "Maximum number of keys" default(20)
// @Success 200 {object} map[string]interface{} "Archive keys"
// @Failure 404 {object} map[string]string "Archive disabled"
// @Router /api/editor/history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	keys, err := h.service.History(c.Context(), c.QueryInt("limit", 20))
	if err != nil {
		return errorJSON(c, err)
	}
	if keys == nil {
		keys = []string{}
	}
	return c.JSON(fiber.Map{"keys": keys})
}

// HandleHistoryRecord returns one archived change set.
// @Summary Archived Change Set
// @Description Returns an archived change set with its apply result.
// @Tags editor
// @Security ApiKeyAuth
// @Produce json
// @Param key path string true "Archive key"
// @Success 200 {object} Record
// @Failure 404 {object} map[string]string "Archive disabled"
// @Router /api/editor/history/{key} [get]
func (h *Handler) HandleHistoryRecord(c *fiber.Ctx) error {
	rec, err := h.service.HistoryRecord(c.Context(), c.Params("*"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(rec)
}
