package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/webcore/framework/pkg/bootstrap"
	"github.com/webcore/framework/pkg/container"
	"github.com/webcore/framework/pkg/contracts"
	"github.com/webcore/framework/pkg/errors"
	"github.com/webcore/framework/pkg/redis"
	"github.com/webcore/framework/pkg/router"
)

var (
	newNotesCode    = errors.WithPrefix("NOTES")
	ErrNoteNotFound = newNotesCode().New("note {{.id}} not found")
	ErrInvalidNote  = newNotesCode().New("invalid note: {{.reason}}")
)

type Note struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type NoteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS notes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		text TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`)
	return err
}

func (r *NoteRepository) Create(ctx context.Context, text string) (Note, error) {
	note := Note{Text: text, CreatedAt: time.Now().UTC()}
	res, err := r.db.ExecContext(ctx, "INSERT INTO notes (text, created_at) VALUES (?, ?)", note.Text, note.CreatedAt)
	if err != nil {
		return Note{}, err
	}
	note.ID, err = res.LastInsertId()
	return note, err
}

func (r *NoteRepository) Find(ctx context.Context, id int64) (Note, error) {
	var note Note
	err := r.db.QueryRowContext(ctx, "SELECT id, text, created_at FROM notes WHERE id = ?", id).
		Scan(&note.ID, &note.Text, &note.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, ErrNoteNotFound.WithDetail("id", id)
	}
	return note, err
}

// NoteController is autowired per request: the repository, the cache and
// the logger are all resolved by type.
type NoteController struct {
	notes *NoteRepository
	cache *redis.Store
	log   contracts.Logger
}

func NewNoteController(notes *NoteRepository, cache *redis.Store, log contracts.Logger) *NoteController {
	return &NoteController{notes: notes, cache: cache, log: log.WithChannel("notes")}
}

func (c *NoteController) Show(w http.ResponseWriter, r *http.Request) error {
	id, err := strconv.ParseInt(router.Param(r, "id"), 10, 64)
	if err != nil {
		return errors.ErrValidation.WithDetail("field", "id").WithCause(err)
	}

	load := func() (string, error) {
		note, err := c.notes.Find(r.Context(), id)
		if err != nil {
			return "", err
		}
		b, err := json.Marshal(note)
		return string(b), err
	}

	body, err := c.cache.Remember(r.Context(), "note:"+strconv.FormatInt(id, 10), time.Minute, load)
	if errors.Is(err, redis.ErrStore) {
		c.log.Warning("note cache unavailable", "error", err)
		body, err = load()
	}
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write([]byte(body))
	return err
}

func (c *NoteController) Create(w http.ResponseWriter, r *http.Request) error {
	var in struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return ErrInvalidNote.WithDetail("reason", "malformed body").WithCause(err)
	}
	if in.Text == "" {
		return ErrInvalidNote.WithDetail("reason", "text is required")
	}

	note, err := c.notes.Create(r.Context(), in.Text)
	if err != nil {
		return err
	}
	c.log.Info("note created", "id", note.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	return json.NewEncoder(w).Encode(note)
}

// schemaModule creates the notes table once the database is available.
type schemaModule struct{}

func (schemaModule) Name() string                       { return "notes.schema" }
func (schemaModule) Register(contracts.Container) error { return nil }
func (schemaModule) Stop(contracts.AppContext) error    { return nil }

func (schemaModule) Start(ctx contracts.AppContext) error {
	repo, err := container.Make[*NoteRepository](ctx.Container())
	if err != nil {
		return err
	}
	return repo.Migrate(ctx.Ctx())
}

func routes(r *router.Router) error {
	controller := container.TypeID[*NoteController]()
	return r.Group("/notes", func(r *router.Router) error {
		if err := r.Post("/", controller, "Create"); err != nil {
			return err
		}
		return r.Get("/{id}", controller, "Show")
	})
}

func newErrorHandler(c contracts.Container) (any, error) {
	log, err := container.Make[contracts.Logger](c)
	if err != nil {
		return nil, err
	}
	cfg := errors.NewDefaultErrorHandlerConfig().
		WithStatusCode(ErrNoteNotFound.Code, http.StatusNotFound).
		WithStatusCode(ErrInvalidNote.Code, http.StatusBadRequest).
		WithUserMessage(ErrNoteNotFound.Code, "Note not found")
	return errors.NewDefaultErrorHandler(cfg, log.WithChannel("http")), nil
}

func main() {
	configPaths := []string{"config.yaml", ".env"}
	if len(os.Args) > 1 {
		configPaths = os.Args[1:]
	}

	b := bootstrap.New("webcore-notes", "1.0.0", "WEBCORE_", configPaths...)
	if err := b.Container().Singleton(contracts.ErrorHandlerID, newErrorHandler); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	a, err := b.
		WithLogger().
		WithDatabase().
		WithRedis().
		WithRouter(routes).
		WithModule(schemaModule{}).
		Declare(NewNoteRepository, NewNoteController).
		CreateApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := a.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
