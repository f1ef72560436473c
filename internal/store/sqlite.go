package store

import (
	"context"
	"fmt"
	"time"

	"github.com/mmuslimabdulj/likechat/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type messageRecord struct {
	ID        string `gorm:"primaryKey"`
	Seq       int    `gorm:"index"`
	Nickname  string
	Content   string
	Timestamp time.Time
}

func (messageRecord) TableName() string { return "messages" }

type likeRecord struct {
	Liker string `gorm:"primaryKey"`
	Likee string `gorm:"primaryKey"`
	Seq   int    `gorm:"index"`
}

func (likeRecord) TableName() string { return "likes" }

type roomRecord struct {
	RoomID    string `gorm:"primaryKey"`
	Seq       int    `gorm:"index"`
	UserA     string
	UserB     string
	CreatedAt time.Time
}

func (roomRecord) TableName() string { return "private_chats" }

// SQLiteStore keeps the snapshot in a SQLite database. Every save replaces
// the tables wholesale inside one transaction.
type SQLiteStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens (and migrates) the database at path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if err := db.AutoMigrate(&messageRecord{}, &likeRecord{}, &roomRecord{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite %s: %w", path, err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load reads all tables into a snapshot
func (s *SQLiteStore) Load(ctx context.Context) (domain.Snapshot, error) {
	var (
		messages []messageRecord
		likes    []likeRecord
		rooms    []roomRecord
	)

	db := s.db.WithContext(ctx)
	if err := db.Order("seq").Find(&messages).Error; err != nil {
		return domain.Snapshot{}, fmt.Errorf("load messages: %w", err)
	}
	if err := db.Order("seq").Find(&likes).Error; err != nil {
		return domain.Snapshot{}, fmt.Errorf("load likes: %w", err)
	}
	if err := db.Order("seq").Find(&rooms).Error; err != nil {
		return domain.Snapshot{}, fmt.Errorf("load private chats: %w", err)
	}

	var snapshot domain.Snapshot
	for _, m := range messages {
		snapshot.Messages = append(snapshot.Messages, domain.PublicMessage{
			ID:        m.ID,
			Nickname:  m.Nickname,
			Content:   m.Content,
			Timestamp: m.Timestamp,
			Kind:      domain.MessageKindPublic,
		})
	}
	for _, l := range likes {
		snapshot.Likes = append(snapshot.Likes, domain.LikeEdge{From: l.Liker, To: l.Likee})
	}
	for _, r := range rooms {
		snapshot.PrivateChats = append(snapshot.PrivateChats, domain.PrivateRoom{
			RoomID:    r.RoomID,
			Users:     [2]string{r.UserA, r.UserB},
			CreatedAt: r.CreatedAt,
		})
	}
	return snapshot, nil
}

// Save replaces the stored snapshot
func (s *SQLiteStore) Save(ctx context.Context, snapshot domain.Snapshot) error {
	messages := make([]messageRecord, 0, len(snapshot.Messages))
	for i, m := range snapshot.Messages {
		messages = append(messages, messageRecord{
			ID:        m.ID,
			Seq:       i,
			Nickname:  m.Nickname,
			Content:   m.Content,
			Timestamp: m.Timestamp,
		})
	}
	likes := make([]likeRecord, 0, len(snapshot.Likes))
	for i, l := range snapshot.Likes {
		likes = append(likes, likeRecord{Liker: l.From, Likee: l.To, Seq: i})
	}
	rooms := make([]roomRecord, 0, len(snapshot.PrivateChats))
	for i, r := range snapshot.PrivateChats {
		rooms = append(rooms, roomRecord{
			RoomID:    r.RoomID,
			Seq:       i,
			UserA:     r.Users[0],
			UserB:     r.Users[1],
			CreatedAt: r.CreatedAt,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&messageRecord{}).Error; err != nil {
			return err
		}
		if err := all.Delete(&likeRecord{}).Error; err != nil {
			return err
		}
		if err := all.Delete(&roomRecord{}).Error; err != nil {
			return err
		}

		if len(messages) > 0 {
			if err := tx.Create(&messages).Error; err != nil {
				return err
			}
		}
		if len(likes) > 0 {
			if err := tx.Create(&likes).Error; err != nil {
				return err
			}
		}
		if len(rooms) > 0 {
			if err := tx.Create(&rooms).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Close releases the database handle
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
