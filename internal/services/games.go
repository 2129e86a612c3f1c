package services

import (
	"errors"
	"io"
	"log"
	"strings"

	"gamegrove/internal/models"

	"gorm.io/gorm"
)

type GameService struct {
	db    *gorm.DB
	store *FileStore
}

func NewGameService(gdb *gorm.DB, store *FileStore) *GameService {
	return &GameService{db: gdb, store: store}
}

type UploadGameInput struct {
	Title       string
	Description string
	File        io.Reader
	Filename    string // original upload name, used for the extension check
	Size        int64
}

// Upload stores the archive and inserts the game row.
func (s *GameService) Upload(uploader *models.User, in UploadGameInput) (*models.Game, error) {
	if uploader == nil {
		return nil, ErrForbidden
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, validationErrorf("title must not be empty")
	}

	stored, err := s.store.Save(in.File, in.Filename, in.Size)
	if err != nil {
		return nil, err
	}

	game := models.Game{
		Title:       title,
		Description: in.Description,
		Filename:    stored,
		UploaderID:  uploader.ID,
	}
	if err := s.db.Create(&game).Error; err != nil {
		if rerr := s.store.Remove(stored); rerr != nil {
			log.Printf("Failed to clean up stored file %s: %v", stored, rerr)
		}
		return nil, err
	}
	return &game, nil
}

func (s *GameService) Get(id uint) (*models.Game, error) {
	var game models.Game
	if err := s.db.Preload("Uploader").First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &game, nil
}

func (s *GameService) List() ([]models.Game, error) {
	var games []models.Game
	err := s.db.Preload("Uploader").Order("created_at DESC, id DESC").Find(&games).Error
	return games, err
}

// FilePath resolves a game's stored archive for download.
func (s *GameService) FilePath(game *models.Game) (string, error) {
	return s.store.Path(game.Filename)
}

// Delete removes the game row (comments cascade with it) and its archive.
// Only the uploader or an admin may delete.
func (s *GameService) Delete(id uint, actor *models.User) error {
	if actor == nil {
		return ErrForbidden
	}
	var game models.Game
	if err := s.db.First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if game.UploaderID != actor.ID && !actor.IsAdmin {
		return ErrForbidden
	}
	// Cascade explicitly so behavior does not depend on the driver honoring
	// the FK constraints. Every comment in a thread carries the game id, so
	// one delete per table covers all depths.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&models.Comment{}).Select("id").Where("game_id = ?", id)
		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&models.Report{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&models.CommentTagHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&game).Error
	})
	if err != nil {
		return err
	}
	if err := s.store.Remove(game.Filename); err != nil {
		log.Printf("Failed to remove stored file %s: %v", game.Filename, err)
	}
	return nil
}
