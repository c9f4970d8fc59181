package roster

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Ragnr99/portfolio-hub/internal/battle"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// DBSource reads species from a PokeAPI SQLite database.
type DBSource struct {
	db    *sqlx.DB
	level int
	limit int
}

// OpenDB opens dbPath read-only. Move lists are the most recently learned
// level-up moves at or below level.
func OpenDB(ctx context.Context, dbPath string, level int) (*DBSource, error) {
	db, err := sqlx.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to read from database: %w", err)
	}
	if level <= 0 {
		level = DefaultLevel
	}
	return &DBSource{db: db, level: level, limit: 6}, nil
}

func (s *DBSource) Close() error {
	return s.db.Close()
}

type pokemonRow struct {
	ID      int            `db:"id"`
	Name    string         `db:"name"`
	Sprites sql.NullString `db:"sprites"`
}

type statRow struct {
	PokemonID int    `db:"pokemon_id"`
	Stat      string `db:"stat"`
	BaseStat  int    `db:"base_stat"`
}

type typeRow struct {
	PokemonID int    `db:"pokemon_id"`
	Type      string `db:"type"`
}

type moveRow struct {
	Name     string `db:"name"`
	Type     string `db:"type"`
	Category string `db:"category"`
	Power    int    `db:"power"`
	Accuracy int    `db:"accuracy"`
}

// All lists default forms with stats, types and sprite. Moves are left
// empty; use ByID for a battle-ready species.
func (s *DBSource) All(ctx context.Context) ([]Species, error) {
	var pokemon []pokemonRow
	err := s.db.SelectContext(ctx, &pokemon,
		/* sql */ `
		SELECT p.id, p.name, sp.sprites
		FROM pokemon_v2_pokemon p
		LEFT JOIN pokemon_v2_pokemonsprites sp ON sp.pokemon_id = p.id
		WHERE p.is_default = 1
		ORDER BY p.id
	`)
	if err != nil {
		return nil, fmt.Errorf("error while getting pokemon: %w", err)
	}

	var stats []statRow
	err = s.db.SelectContext(ctx, &stats,
		/* sql */ `
		SELECT ps.pokemon_id, st.name AS stat, ps.base_stat
		FROM pokemon_v2_pokemonstat ps
		JOIN pokemon_v2_stat st ON st.id = ps.stat_id
	`)
	if err != nil {
		return nil, fmt.Errorf("error while getting base stats: %w", err)
	}

	var types []typeRow
	err = s.db.SelectContext(ctx, &types,
		/* sql */ `
		SELECT pt.pokemon_id, t.name AS type
		FROM pokemon_v2_pokemontype pt
		JOIN pokemon_v2_type t ON t.id = pt.type_id
		ORDER BY pt.pokemon_id, pt.slot
	`)
	if err != nil {
		return nil, fmt.Errorf("error while getting types: %w", err)
	}

	index := make(map[int]int, len(pokemon))
	out := make([]Species, len(pokemon))
	for i, p := range pokemon {
		index[p.ID] = i
		out[i] = Species{ID: p.ID, Name: p.Name, Sprite: frontSprite(p.Sprites)}
	}
	for _, r := range stats {
		if i, ok := index[r.PokemonID]; ok {
			setStat(&out[i].Base, r.Stat, r.BaseStat)
		}
	}
	for _, r := range types {
		if i, ok := index[r.PokemonID]; ok {
			out[i].Types = append(out[i].Types, battle.Type(r.Type))
		}
	}
	return out, nil
}

// ByID loads one species with its move list.
func (s *DBSource) ByID(ctx context.Context, id int) (Species, error) {
	var p pokemonRow
	err := s.db.QueryRowxContext(ctx,
		/* sql */ `
		SELECT p.id, p.name, sp.sprites
		FROM pokemon_v2_pokemon p
		LEFT JOIN pokemon_v2_pokemonsprites sp ON sp.pokemon_id = p.id
		WHERE p.id = ?
	`, id).StructScan(&p)
	if errors.Is(err, sql.ErrNoRows) {
		return Species{}, fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Species{}, fmt.Errorf("error while getting pokemon %d: %w", id, err)
	}
	sp := Species{ID: p.ID, Name: p.Name, Sprite: frontSprite(p.Sprites)}

	var stats []statRow
	err = s.db.SelectContext(ctx, &stats,
		/* sql */ `
		SELECT ps.pokemon_id, st.name AS stat, ps.base_stat
		FROM pokemon_v2_pokemonstat ps
		JOIN pokemon_v2_stat st ON st.id = ps.stat_id
		WHERE ps.pokemon_id = ?
	`, id)
	if err != nil {
		return Species{}, fmt.Errorf("error while getting base stats: %w", err)
	}
	for _, r := range stats {
		setStat(&sp.Base, r.Stat, r.BaseStat)
	}

	var types []string
	err = s.db.SelectContext(ctx, &types,
		/* sql */ `
		SELECT t.name
		FROM pokemon_v2_pokemontype pt
		JOIN pokemon_v2_type t ON t.id = pt.type_id
		WHERE pt.pokemon_id = ?
		ORDER BY pt.slot
	`, id)
	if err != nil {
		return Species{}, fmt.Errorf("error while getting types: %w", err)
	}
	for _, t := range types {
		sp.Types = append(sp.Types, battle.Type(t))
	}

	sp.Moves, err = s.moves(ctx, id)
	if err != nil {
		return Species{}, err
	}
	return sp, nil
}

func (s *DBSource) moves(ctx context.Context, id int) ([]battle.Move, error) {
	var rows []moveRow
	err := s.db.SelectContext(ctx, &rows,
		/* sql */ `
		SELECT m.name, t.name AS type, dc.name AS category,
			COALESCE(m.power, 0) AS power, COALESCE(m.accuracy, 100) AS accuracy
		FROM (
			SELECT pm.move_id, MAX(pm.level) AS level
			FROM pokemon_v2_pokemonmove pm
			JOIN pokemon_v2_movelearnmethod lm ON lm.id = pm.move_learn_method_id
			WHERE pm.pokemon_id = ? AND lm.name = 'level-up' AND pm.level <= ?
			GROUP BY pm.move_id
		) learned
		JOIN pokemon_v2_move m ON m.id = learned.move_id
		JOIN pokemon_v2_type t ON t.id = m.type_id
		JOIN pokemon_v2_movedamageclass dc ON dc.id = m.move_damage_class_id
		ORDER BY learned.level DESC, m.id
		LIMIT ?
	`, id, s.level, s.limit)
	if err != nil {
		return nil, fmt.Errorf("error while getting moves for pokemon %d: %w", id, err)
	}

	moves := make([]battle.Move, len(rows))
	for i, r := range rows {
		moves[i] = battle.Move{
			Name:     r.Name,
			Type:     battle.Type(r.Type),
			Category: battle.Category(r.Category),
			Power:    r.Power,
			Accuracy: r.Accuracy,
		}
	}
	return moves, nil
}

func setStat(st *battle.Stats, name string, v int) {
	switch name {
	case "hp":
		st.HP = v
	case "attack":
		st.Attack = v
	case "defense":
		st.Defense = v
	case "special-attack":
		st.SpecialAttack = v
	case "special-defense":
		st.SpecialDefense = v
	case "speed":
		st.Speed = v
	}
}

// frontSprite pulls front_default out of the sprites JSON blob.
func frontSprite(raw sql.NullString) string {
	if !raw.Valid || raw.String == "" {
		return ""
	}
	var sprites struct {
		FrontDefault *string `json:"front_default"`
	}
	if err := json.Unmarshal([]byte(raw.String), &sprites); err != nil || sprites.FrontDefault == nil {
		return ""
	}
	return *sprites.FrontDefault
}
