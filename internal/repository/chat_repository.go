package repository

import (
	"context"
	"time"
	"wellness_backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

// ChatRepository 对话历史存储，MySQL 与 MongoDB 两种实现
type ChatRepository interface {
	Append(ctx context.Context, msg *model.ChatMessage) error
	// Recent 返回最近 limit 条消息，按时间升序
	Recent(ctx context.Context, userID string, limit int) ([]model.ChatMessage, error)
	Clear(ctx context.Context, userID string) error
}

type gormChatRepository struct {
	DB *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &gormChatRepository{DB: db}
}

func (r *gormChatRepository) Append(ctx context.Context, msg *model.ChatMessage) error {
	return r.DB.WithContext(ctx).Create(msg).Error
}

func (r *gormChatRepository) Recent(ctx context.Context, userID string, limit int) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	reverse(messages)
	return messages, nil
}

func (r *gormChatRepository) Clear(ctx context.Context, userID string) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.ChatMessage{}).Error
}

type mongoChatRepository struct {
	collection *mongo.Collection
}

func NewMongoChatRepository(db *mongo.Database) ChatRepository {
	return &mongoChatRepository{
		collection: db.Collection("chat_messages"),
	}
}

// EnsureChatIndexes 创建 (userId, createdAt) 复合索引
func EnsureChatIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("chat_messages").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

func (r *mongoChatRepository) Append(ctx context.Context, msg *model.ChatMessage) error {
	if msg.ID == "" {
		msg.ID = model.GenerateUUID()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, msg)
	return err
}

func (r *mongoChatRepository) Recent(ctx context.Context, userID string, limit int) ([]model.ChatMessage, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []model.ChatMessage
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	reverse(messages)
	return messages, nil
}

func (r *mongoChatRepository) Clear(ctx context.Context, userID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}

func reverse(messages []model.ChatMessage) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}
