package mongo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/sripathisridhar/assignment11/internal/domain"
	"github.com/sripathisridhar/assignment11/internal/ports"
)

var _ ports.ICalculationRepository = (*CalculationRepo)(nil)

// calculationDoc — документ в коллекции calculations. ID числовой (как в PG),
// выдаётся из коллекции counters, чтобы оба репозитория были взаимозаменяемы.
type calculationDoc struct {
	ID        int64     `bson:"id"`
	UserID    int64     `bson:"user_id"`
	Type      string    `bson:"type"`
	Operands  []float64 `bson:"operands"`
	Result    float64   `bson:"result"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d calculationDoc) toDomain() domain.Calculation {
	return domain.Calculation{
		ID:        d.ID,
		UserID:    d.UserID,
		Type:      domain.CalcType(d.Type),
		Operands:  d.Operands,
		Result:    d.Result,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// CalculationRepo реализует ports.ICalculationRepository для MongoDB.
type CalculationRepo struct {
	client *Client
	log    *slog.Logger
}

// NewCalculationRepo возвращает репозиторий вычислений.
func NewCalculationRepo(client *Client, log *slog.Logger) *CalculationRepo {
	return &CalculationRepo{client: client, log: log}
}

// nextID выдаёт следующий числовой идентификатор через коллекцию counters ($inc + upsert).
func (r *CalculationRepo) nextID(ctx context.Context) (int64, error) {
	coll := r.client.DB().Collection("counters")
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := coll.FindOneAndUpdate(ctx,
		bson.M{"_id": "calculations"},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// Save сохраняет вычисление в коллекцию и возвращает присвоенный идентификатор.
func (r *CalculationRepo) Save(ctx context.Context, c domain.Calculation) (int64, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		r.log.Debug("nextID failed", "error", err)
		return 0, err
	}
	doc := calculationDoc{
		ID:        id,
		UserID:    c.UserID,
		Type:      string(c.Type),
		Operands:  c.Operands,
		Result:    c.Result,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if _, err := r.client.Coll().InsertOne(ctx, doc); err != nil {
		r.log.Debug("Save failed", "error", err)
		return 0, err
	}
	return id, nil
}

// GetByID возвращает вычисление по идентификатору; domain.ErrNotFound, если документа нет.
func (r *CalculationRepo) GetByID(ctx context.Context, id int64) (*domain.Calculation, error) {
	var doc calculationDoc
	err := r.client.Coll().FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		r.log.Debug("GetByID failed", "id", id, "error", err)
		return nil, err
	}
	c := doc.toDomain()
	return &c, nil
}

// ListByUser возвращает историю вычислений пользователя (последние сначала).
func (r *CalculationRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Calculation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.client.Coll().Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		r.log.Debug("ListByUser failed", "user_id", userID, "error", err)
		return nil, err
	}
	defer cursor.Close(ctx)
	var docs []calculationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	list := make([]domain.Calculation, 0, len(docs))
	for _, d := range docs {
		list = append(list, d.toDomain())
	}
	return list, nil
}

// Update перезаписывает операнды и результат; тип неизменяем.
func (r *CalculationRepo) Update(ctx context.Context, c domain.Calculation) error {
	res, err := r.client.Coll().UpdateOne(ctx,
		bson.M{"id": c.ID},
		bson.M{"$set": bson.M{
			"operands":   c.Operands,
			"result":     c.Result,
			"updated_at": c.UpdatedAt,
		}})
	if err != nil {
		r.log.Debug("Update failed", "id", c.ID, "error", err)
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete удаляет вычисление владельца.
func (r *CalculationRepo) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.client.Coll().DeleteOne(ctx, bson.M{"id": id, "user_id": userID})
	if err != nil {
		r.log.Debug("Delete failed", "id", id, "error", err)
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Ping проверяет доступность БД.
func (r *CalculationRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}
