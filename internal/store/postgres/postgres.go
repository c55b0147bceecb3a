package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"portfolio/internal/store"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// row is the table layout shared by every collection: the id as a column and
// the remaining fields as one JSONB document.
type row struct {
	ID        string            `gorm:"primaryKey;type:varchar(24)"`
	Doc       datatypes.JSONMap `gorm:"type:jsonb;not null"`
	CreatedAt time.Time         `gorm:"not null"`
}

var fieldName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type Store struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// Connect opens the Postgres database (a Supabase project works as well),
// verifies it with a ping and creates one table per collection.
func Connect(ctx context.Context, dsn string, timeout time.Duration, logger *zap.Logger) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is empty")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	s := &Store{db: db, logger: logger.Sugar()}
	if err := s.migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	s.logger.Infow("Connected to PostgreSQL", "tables", store.Collections)
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	for _, name := range store.Collections {
		tx := s.db.WithContext(ctx)
		if err := tx.Table(name).AutoMigrate(&row{}); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", name, err)
		}
		stmts := []string{
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_created_at ON %s (created_at, id)`, name, name),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_doc ON %s USING GIN (doc jsonb_path_ops)`, name, name),
		}
		for _, stmt := range stmts {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("failed to index %s: %w", name, err)
			}
		}
	}
	return nil
}

func (s *Store) Backend() string { return "postgres" }

func (s *Store) NativeTTL() bool { return false }

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// scoped builds a query over the collection table filtered by q.
func (s *Store) scoped(ctx context.Context, name string, q store.Query) (*gorm.DB, error) {
	if err := store.CheckCollection(name); err != nil {
		return nil, err
	}
	tx := s.db.WithContext(ctx).Table(name)

	rest := make(store.Document, len(q))
	for k, v := range q {
		if k == store.IDField {
			tx = tx.Where("id = ?", v)
			continue
		}
		rest[k] = v
	}
	if len(rest) > 0 {
		raw, err := json.Marshal(encode(rest))
		if err != nil {
			return nil, err
		}
		tx = tx.Where("doc @> ?::jsonb", string(raw))
	}
	return tx, nil
}

func (s *Store) FindOne(ctx context.Context, name string, q store.Query) (store.Document, error) {
	tx, err := s.scoped(ctx, name, q)
	if err != nil {
		return nil, err
	}
	var rows []row
	if err := tx.Order("created_at, id").Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}
	return decode(rows[0]), nil
}

func (s *Store) FindMany(ctx context.Context, name string, q store.Query, opts store.FindOptions) ([]store.Document, error) {
	tx, err := s.scoped(ctx, name, q)
	if err != nil {
		return nil, err
	}

	switch {
	case opts.SortField == "":
		tx = tx.Order("created_at, id")
	case opts.SortField == store.IDField:
		tx = tx.Order("id " + direction(opts.SortDescending))
	case fieldName.MatchString(opts.SortField):
		dir := direction(opts.SortDescending)
		tx = tx.Order(fmt.Sprintf("doc -> '%s' %s, id %s", opts.SortField, dir, dir))
	default:
		return nil, fmt.Errorf("invalid sort field %q", opts.SortField)
	}
	if opts.Limit > 0 {
		tx = tx.Limit(int(opts.Limit))
	}

	var rows []row
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]store.Document, 0, len(rows))
	for _, r := range rows {
		out = append(out, decode(r))
	}
	return out, nil
}

func (s *Store) InsertOne(ctx context.Context, name string, doc store.Document) (string, error) {
	if err := store.CheckCollection(name); err != nil {
		return "", err
	}
	return s.insert(ctx, name, doc)
}

func (s *Store) insert(ctx context.Context, name string, doc store.Document) (string, error) {
	id := doc.ID()
	if id == "" {
		id = store.NewID()
	}
	fields := encode(doc)
	delete(fields, store.IDField)

	r := row{ID: id, Doc: datatypes.JSONMap(fields), CreatedAt: time.Now().UTC()}
	if err := s.db.WithContext(ctx).Table(name).Create(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", fmt.Errorf("%w: %s", store.ErrDuplicateID, id)
		}
		return "", err
	}
	return id, nil
}

func (s *Store) firstID(ctx context.Context, name string, q store.Query) (string, error) {
	tx, err := s.scoped(ctx, name, q)
	if err != nil {
		return "", err
	}
	var ids []string
	if err := tx.Order("created_at, id").Limit(1).Pluck("id", &ids).Error; err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", nil
	}
	return ids[0], nil
}

func (s *Store) UpdateOne(ctx context.Context, name string, q store.Query, set store.Document, upsert bool) (store.UpdateResult, error) {
	id, err := s.firstID(ctx, name, q)
	if err != nil {
		return store.UpdateResult{}, err
	}

	fields := encode(set)
	delete(fields, store.IDField)

	if id != "" {
		raw, err := json.Marshal(fields)
		if err != nil {
			return store.UpdateResult{}, err
		}
		err = s.db.WithContext(ctx).Table(name).
			Where("id = ?", id).
			Update("doc", gorm.Expr("doc || ?::jsonb", string(raw))).Error
		if err != nil {
			return store.UpdateResult{}, err
		}
		return store.UpdateResult{Matched: true}, nil
	}
	if !upsert {
		return store.UpdateResult{}, nil
	}

	doc := make(store.Document, len(q)+len(set))
	for k, v := range q {
		doc[k] = v
	}
	for k, v := range set {
		doc[k] = v
	}
	newID, err := s.insert(ctx, name, doc)
	if err != nil {
		return store.UpdateResult{}, err
	}
	return store.UpdateResult{UpsertedID: newID}, nil
}

func (s *Store) DeleteOne(ctx context.Context, name string, q store.Query) (int64, error) {
	id, err := s.firstID(ctx, name, q)
	if err != nil || id == "" {
		return 0, err
	}
	res := s.db.WithContext(ctx).Table(name).Where("id = ?", id).Delete(&row{})
	return res.RowsAffected, res.Error
}

func (s *Store) DeleteMany(ctx context.Context, name string, q store.Query) (int64, error) {
	tx, err := s.scoped(ctx, name, q)
	if err != nil {
		return 0, err
	}
	if len(q) == 0 {
		tx = tx.Session(&gorm.Session{AllowGlobalUpdate: true})
	}
	res := tx.Delete(&row{})
	return res.RowsAffected, res.Error
}

func (s *Store) Count(ctx context.Context, name string, q store.Query) (int64, error) {
	tx, err := s.scoped(ctx, name, q)
	if err != nil {
		return 0, err
	}
	var n int64
	err = tx.Count(&n).Error
	return n, err
}

func direction(desc bool) string {
	if desc {
		return "DESC"
	}
	return "ASC"
}

// encode turns timestamps into fixed-width UTC text so JSONB ordering is chronological.
func encode(doc store.Document) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		if t, ok := v.(time.Time); ok {
			v = t.UTC().Format(store.TimeLayout)
		}
		out[k] = v
	}
	return out
}

func decode(r row) store.Document {
	out := make(store.Document, len(r.Doc)+1)
	for k, v := range r.Doc {
		if str, ok := v.(string); ok && len(str) == len(store.TimeLayout) {
			if t, err := time.Parse(store.TimeLayout, str); err == nil {
				out[k] = t
				continue
			}
		}
		out[k] = v
	}
	out[store.IDField] = r.ID
	return out
}
