// Package persistence stores projects (the full stroke/connection
// scene) in SQLite so a drawing survives restarts.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/strokesim/internal/easing"
	"github.com/talgya/strokesim/internal/geom"
	"github.com/talgya/strokesim/internal/modulation"
	"github.com/talgya/strokesim/internal/scene"
)

// DB wraps a SQLite connection for project storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS strokes (
		id TEXT PRIMARY KEY,
		idx INTEGER NOT NULL,
		seed REAL NOT NULL,
		phase_offset REAL NOT NULL,
		origin_x REAL NOT NULL,
		origin_y REAL NOT NULL,
		points_json TEXT NOT NULL,
		params_json TEXT NOT NULL,
		mods_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS connections (
		id TEXT PRIMARY KEY,
		from_stroke TEXT NOT NULL,
		from_point INTEGER NOT NULL,
		to_stroke TEXT NOT NULL,
		to_point INTEGER NOT NULL,
		rest_length REAL NOT NULL,
		stiffness REAL NOT NULL,
		breaking_force REAL NOT NULL,
		bias REAL NOT NULL,
		influence INTEGER NOT NULL,
		falloff REAL NOT NULL,
		decay_easing INTEGER NOT NULL,
		mods_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS project_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_strokes_idx ON strokes(idx);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveScene writes the full scene to the database (full replace).
func (db *DB) SaveScene(w *scene.World) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM strokes"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM connections"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO strokes
		(id, idx, seed, phase_offset, origin_x, origin_y,
		 points_json, params_json, mods_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range w.Strokes {
		pointsJSON, _ := json.Marshal(s.Points)
		paramsJSON, _ := json.Marshal(s.Params)
		modsJSON, _ := json.Marshal(s.Mods)

		_, err := stmt.Exec(
			s.ID, s.Index, s.Seed, s.PhaseOffset,
			s.OriginCenter.X, s.OriginCenter.Y,
			string(pointsJSON), string(paramsJSON), string(modsJSON),
		)
		if err != nil {
			return fmt.Errorf("insert stroke %s: %w", s.ID, err)
		}
	}

	for _, c := range w.Connections {
		modsJSON, _ := json.Marshal(c.Mods)
		_, err := tx.Exec(`INSERT INTO connections
			(id, from_stroke, from_point, to_stroke, to_point,
			 rest_length, stiffness, breaking_force, bias,
			 influence, falloff, decay_easing, mods_json)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.From.StrokeID, c.From.PointIndex,
			c.To.StrokeID, c.To.PointIndex,
			c.RestLength, c.Stiffness, c.BreakingForce, c.Bias,
			c.Influence, c.Falloff, uint8(c.DecayEasing), string(modsJSON),
		)
		if err != nil {
			return fmt.Errorf("insert connection %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("scene saved", "strokes", len(w.Strokes), "connections", len(w.Connections))
	return nil
}

type strokeRow struct {
	ID          string  `db:"id"`
	Idx         int     `db:"idx"`
	Seed        float64 `db:"seed"`
	PhaseOffset float64 `db:"phase_offset"`
	OriginX     float64 `db:"origin_x"`
	OriginY     float64 `db:"origin_y"`
	PointsJSON  string  `db:"points_json"`
	ParamsJSON  string  `db:"params_json"`
	ModsJSON    string  `db:"mods_json"`
}

type connectionRow struct {
	ID            string  `db:"id"`
	FromStroke    string  `db:"from_stroke"`
	FromPoint     int     `db:"from_point"`
	ToStroke      string  `db:"to_stroke"`
	ToPoint       int     `db:"to_point"`
	RestLength    float64 `db:"rest_length"`
	Stiffness     float64 `db:"stiffness"`
	BreakingForce float64 `db:"breaking_force"`
	Bias          float64 `db:"bias"`
	Influence     int     `db:"influence"`
	Falloff       float64 `db:"falloff"`
	DecayEasing   uint8   `db:"decay_easing"`
	ModsJSON      string  `db:"mods_json"`
}

// LoadScene reads the full scene back into a fresh world.
func (db *DB) LoadScene() (*scene.World, error) {
	var strokeRows []strokeRow
	if err := db.conn.Select(&strokeRows, "SELECT * FROM strokes ORDER BY idx"); err != nil {
		return nil, fmt.Errorf("load strokes: %w", err)
	}

	w := scene.NewWorld()
	for _, r := range strokeRows {
		s := &scene.Stroke{
			ID:           r.ID,
			Index:        r.Idx,
			Seed:         r.Seed,
			PhaseOffset:  r.PhaseOffset,
			OriginCenter: geom.V(r.OriginX, r.OriginY),
		}
		if err := json.Unmarshal([]byte(r.PointsJSON), &s.Points); err != nil {
			return nil, fmt.Errorf("stroke %s points: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(r.ParamsJSON), &s.Params); err != nil {
			return nil, fmt.Errorf("stroke %s params: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(r.ModsJSON), &s.Mods); err != nil {
			return nil, fmt.Errorf("stroke %s mods: %w", r.ID, err)
		}
		if s.Mods == nil {
			s.Mods = make(map[string]*modulation.Config)
		}
		s.UpdateCenter()
		w.AddStroke(s)
	}

	var connRows []connectionRow
	if err := db.conn.Select(&connRows, "SELECT * FROM connections"); err != nil {
		return nil, fmt.Errorf("load connections: %w", err)
	}
	for _, r := range connRows {
		c := &scene.Connection{
			ID:            r.ID,
			From:          scene.Endpoint{StrokeID: r.FromStroke, PointIndex: r.FromPoint},
			To:            scene.Endpoint{StrokeID: r.ToStroke, PointIndex: r.ToPoint},
			RestLength:    r.RestLength,
			Stiffness:     r.Stiffness,
			BreakingForce: r.BreakingForce,
			Bias:          r.Bias,
			Influence:     r.Influence,
			Falloff:       r.Falloff,
			DecayEasing:   easing.Kind(r.DecayEasing),
		}
		if err := json.Unmarshal([]byte(r.ModsJSON), &c.Mods); err != nil {
			return nil, fmt.Errorf("connection %s mods: %w", r.ID, err)
		}
		if c.Mods == nil {
			c.Mods = make(map[string]*modulation.Config)
		}
		w.Connect(c)
	}

	return w, nil
}

// SaveMeta stores a key-value pair in project metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO project_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM project_meta WHERE key = ?", key)
	return value, err
}

// HasScene reports whether any strokes are stored.
func (db *DB) HasScene() bool {
	var count int
	if err := db.conn.Get(&count, "SELECT COUNT(*) FROM strokes"); err != nil {
		return false
	}
	return count > 0
}
