package db

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"compeval/internal/domain/auth"
)

// Seed loads a small demo dataset. Every statement is ON CONFLICT DO NOTHING
// so the seeder can run on each boot without clobbering real data.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	var employees int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&employees); err != nil {
		return err
	}
	if employees > 0 {
		slog.Info("seed skipped, employees already present", "count", employees)
		return nil
	}

	reviewerHash, err := auth.HashPassword("cambiar123")
	if err != nil {
		return err
	}

	type employee struct {
		id, name, area, level, manager, hash string
	}
	seedEmployees := []employee{
		{"EMP001", "Carlos Ruiz", "Planta", auth.AccessOperator, "Marta Gómez", ""},
		{"EMP002", "Lucía Fernández", "Planta", auth.AccessOperator, "Marta Gómez", ""},
		{"SUP001", "Marta Gómez", "Producción", auth.AccessSupervisor, "", reviewerHash},
		{"EVA001", "Jorge Salas", "Calidad", auth.AccessEvaluator, "", reviewerHash},
	}
	for _, e := range seedEmployees {
		_, err := pool.Exec(ctx, `
			INSERT INTO employees (id, name, area, access_level, immediate_manager, password_hash)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''))
			ON CONFLICT (id) DO NOTHING`,
			e.id, e.name, e.area, e.level, e.manager, e.hash)
		if err != nil {
			return err
		}
	}

	if _, err := pool.Exec(ctx, `
		INSERT INTO categories (id, name, area)
		VALUES (1, 'Seguridad industrial', 'Planta'),
		       (2, 'Operación de maquinaria', 'Producción')
		ON CONFLICT (id) DO NOTHING`); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
		INSERT INTO processes (id, category_id, name)
		VALUES (1, 1, 'Uso de equipo de protección'),
		       (2, 2, 'Arranque de línea')
		ON CONFLICT (id) DO NOTHING`); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
		INSERT INTO questions (id, category_id, process_id, title, weight, display_order)
		VALUES (1, 1, 1, '¿Utiliza casco y guantes durante toda la jornada?', 2, 1),
		       (2, 1, 1, '¿Reporta condiciones inseguras al supervisor?', 1, 2),
		       (3, 1, NULL, '¿Conoce las rutas de evacuación?', 1, 3),
		       (4, 2, 2, '¿Verifica presiones antes del arranque?', 3, 1),
		       (5, 2, 2, '¿Registra la bitácora de turno?', 1, 2)
		ON CONFLICT (id) DO NOTHING`); err != nil {
		return err
	}

	slog.Info("seed completed")
	return nil
}
