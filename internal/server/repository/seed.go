package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/vkotlyarenko/go-agro-registry/internal/server/db"
)

// SeedRepository выполняет разовую загрузку справочных таблиц из CSV.
//
// Справочники (типы культур, паттерны коэффициента Kc) не используются
// ни одним хендлером — это инициализационные данные, загружаемые
// обслуживающей командой при разворачивании БД.
type SeedRepository struct{}

// NewSeedRepository создает новый SeedRepository.
func NewSeedRepository() *SeedRepository {
	return &SeedRepository{}
}

// LoadCropTypes загружает справочник типов культур.
//
// Формат CSV: заголовок + строки "id,name,fdc".
// Пустая ячейка означает NULL (в исходных данных встречаются пропуски).
// Возвращает число вставленных строк.
func (r *SeedRepository) LoadCropTypes(ctx context.Context, q db.DBTX, src io.Reader) (int, error) {
	rows, err := readCSV(src, 3)
	if err != nil {
		return 0, fmt.Errorf("crop types csv: %w", err)
	}

	n := 0
	for _, rec := range rows {
		id, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			return n, fmt.Errorf("crop types csv: bad id %q: %w", rec[0], err)
		}

		_, err = q.ExecContext(ctx,
			`INSERT INTO crop_types (id, name, fdc) VALUES ($1,$2,$3)`,
			id, rec[1], nullable(rec[2]),
		)
		if err != nil {
			return n, fmt.Errorf("insert crop type %d: %w", id, err)
		}
		n++
	}
	return n, nil
}

// LoadKcPatterns загружает справочник паттернов коэффициента Kc.
//
// Формат CSV: заголовок + строки "id,crop_type_id,stage,kc".
func (r *SeedRepository) LoadKcPatterns(ctx context.Context, q db.DBTX, src io.Reader) (int, error) {
	rows, err := readCSV(src, 4)
	if err != nil {
		return 0, fmt.Errorf("kc patterns csv: %w", err)
	}

	n := 0
	for _, rec := range rows {
		id, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			return n, fmt.Errorf("kc patterns csv: bad id %q: %w", rec[0], err)
		}
		cropTypeID, err := strconv.ParseInt(rec[1], 10, 64)
		if err != nil {
			return n, fmt.Errorf("kc patterns csv: bad crop_type_id %q: %w", rec[1], err)
		}

		_, err = q.ExecContext(ctx,
			`INSERT INTO kc_patterns (id, crop_type_id, stage, kc) VALUES ($1,$2,$3,$4)`,
			id, cropTypeID, rec[2], nullable(rec[3]),
		)
		if err != nil {
			return n, fmt.Errorf("insert kc pattern %d: %w", id, err)
		}
		n++
	}
	return n, nil
}

// readCSV читает все записи, отбрасывает строку заголовка
// и проверяет число колонок.
func readCSV(src io.Reader, fields int) ([][]string, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = fields

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	// первая строка — заголовок
	return records[1:], nil
}

// nullable превращает пустую ячейку CSV в NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
