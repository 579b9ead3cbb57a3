package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/kotoba-app/kotoba-api/internal/domain"
	"github.com/kotoba-app/kotoba-api/internal/platform/logger"
	"github.com/kotoba-app/kotoba-api/internal/store"
)

// anonymousNarrator is the name recorded when a recording arrives with no
// narrator attribution.
const anonymousNarrator = "anonymous"

// PostgresAudioStore implements the store.AudioStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAudioStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAudioStore creates a new PostgreSQL implementation of the
// AudioStore interface. If logger is nil, a default logger will be used.
func NewPostgresAudioStore(db store.DBTX, logger *slog.Logger) *PostgresAudioStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAudioStore{
		db:     db,
		logger: logger.With(slog.String("component", "audio_store")),
	}
}

// Ensure PostgresAudioStore implements store.AudioStore interface
var _ store.AudioStore = (*PostgresAudioStore)(nil)

// WithTx implements store.AudioStore.WithTx
func (s *PostgresAudioStore) WithTx(tx *sql.Tx) store.AudioStore {
	return &PostgresAudioStore{
		db:     tx,
		logger: s.logger,
	}
}

// FilesFor implements store.AudioStore.FilesFor
func (s *PostgresAudioStore) FilesFor(ctx context.Context, bundleID int64) ([]domain.AudioFile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, bundle_id, narrator_id, file_path, mime_type
		FROM audio_files
		WHERE bundle_id = $1
		ORDER BY id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, bundleID)
	if err != nil {
		log.Error("failed to query audio files",
			slog.String("error", err.Error()),
			slog.Int64("bundle_id", bundleID))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var files []domain.AudioFile
	for rows.Next() {
		var f domain.AudioFile
		err := rows.Scan(&f.ID, &f.BundleID, &f.NarratorID, &f.FilePath, &f.MimeType)
		if err != nil {
			log.Error("failed to scan audio file row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		files = append(files, f)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	if files == nil {
		files = []domain.AudioFile{}
	}

	return files, nil
}

// GetFile implements store.AudioStore.GetFile
func (s *PostgresAudioStore) GetFile(ctx context.Context, id int64) (*domain.AudioFile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, bundle_id, narrator_id, file_path, mime_type
		FROM audio_files
		WHERE id = $1
	`

	var f domain.AudioFile
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&f.ID,
		&f.BundleID,
		&f.NarratorID,
		&f.FilePath,
		&f.MimeType,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("audio file not found", slog.Int64("file_id", id))
			return nil, store.ErrAudioFileNotFound
		}
		log.Error("failed to get audio file by ID",
			slog.String("error", err.Error()),
			slog.Int64("file_id", id))
		return nil, MapError(err)
	}

	return &f, nil
}

// CreateBundle implements store.AudioStore.CreateBundle
func (s *PostgresAudioStore) CreateBundle(ctx context.Context, name string) (*domain.AudioBundle, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	bundle := domain.AudioBundle{Name: name}

	query := `
		INSERT INTO audio_bundles (list_name)
		VALUES ($1)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query, name).Scan(&bundle.ID)
	if err != nil {
		log.Error("failed to create audio bundle",
			slog.String("error", err.Error()),
			slog.String("name", name))
		return nil, MapError(err)
	}

	log.Info("audio bundle created",
		slog.Int64("bundle_id", bundle.ID),
		slog.String("name", name))
	return &bundle, nil
}

// CreateFile implements store.AudioStore.CreateFile
func (s *PostgresAudioStore) CreateFile(ctx context.Context, file *domain.AudioFile) (*domain.AudioFile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO audio_files (bundle_id, narrator_id, file_path, mime_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		file.BundleID,
		file.NarratorID,
		file.FilePath,
		file.MimeType,
	).Scan(&file.ID)
	if err != nil {
		log.Error("failed to create audio file",
			slog.String("error", err.Error()),
			slog.Int64("bundle_id", file.BundleID),
			slog.String("file_path", file.FilePath))
		return nil, MapError(err)
	}

	log.Info("audio file created",
		slog.Int64("file_id", file.ID),
		slog.Int64("bundle_id", file.BundleID))
	return file, nil
}

// GetOrCreateNarrator implements store.AudioStore.GetOrCreateNarrator
func (s *PostgresAudioStore) GetOrCreateNarrator(ctx context.Context, name string) (*domain.Narrator, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if name == "" {
		name = anonymousNarrator
	}

	narrator := domain.Narrator{Name: name}

	query := `
		INSERT INTO narrators (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query, name).Scan(&narrator.ID)
	if err != nil {
		log.Error("failed to get or create narrator",
			slog.String("error", err.Error()),
			slog.String("name", name))
		return nil, MapError(err)
	}

	return &narrator, nil
}

// ListBundles implements store.AudioStore.ListBundles
func (s *PostgresAudioStore) ListBundles(
	ctx context.Context,
) (map[int64][]domain.AudioFile, []domain.AudioBundle, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	bundleQuery := `
		SELECT id, list_name
		FROM audio_bundles
		ORDER BY id ASC
	`

	rows, err := s.db.QueryContext(ctx, bundleQuery)
	if err != nil {
		log.Error("failed to query audio bundles",
			slog.String("error", err.Error()))
		return nil, nil, MapError(err)
	}

	var bundles []domain.AudioBundle
	for rows.Next() {
		var b domain.AudioBundle
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			_ = rows.Close()
			log.Error("failed to scan audio bundle row",
				slog.String("error", err.Error()))
			return nil, nil, MapError(err)
		}
		bundles = append(bundles, b)
	}
	closeErr := rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, MapError(err)
	}
	if closeErr != nil {
		log.Error("failed to close rows", slog.String("error", closeErr.Error()))
	}

	fileQuery := `
		SELECT id, bundle_id, narrator_id, file_path, mime_type
		FROM audio_files
		ORDER BY bundle_id ASC, id ASC
	`

	fileRows, err := s.db.QueryContext(ctx, fileQuery)
	if err != nil {
		log.Error("failed to query audio files",
			slog.String("error", err.Error()))
		return nil, nil, MapError(err)
	}
	defer func() {
		if err := fileRows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	filesByBundle := make(map[int64][]domain.AudioFile)
	for fileRows.Next() {
		var f domain.AudioFile
		err := fileRows.Scan(&f.ID, &f.BundleID, &f.NarratorID, &f.FilePath, &f.MimeType)
		if err != nil {
			log.Error("failed to scan audio file row",
				slog.String("error", err.Error()))
			return nil, nil, MapError(err)
		}
		filesByBundle[f.BundleID] = append(filesByBundle[f.BundleID], f)
	}

	if err := fileRows.Err(); err != nil {
		return nil, nil, MapError(err)
	}

	if bundles == nil {
		bundles = []domain.AudioBundle{}
	}

	return filesByBundle, bundles, nil
}
