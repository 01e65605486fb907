package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/kkapil94/outflo-assignment/internal/models"
	"github.com/kkapil94/outflo-assignment/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CampaignCollection is the collection campaigns are stored in
const CampaignCollection = "campaigns"

var _ repositories.CampaignRepository = (*CampaignRepository)(nil)

// CampaignRepository implements the repositories.CampaignRepository interface
type CampaignRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewCampaignRepository creates a new CampaignRepository
func NewCampaignRepository(db *mongo.Database) *CampaignRepository {
	return &CampaignRepository{
		collection: db.Collection(CampaignCollection),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// EnsureIndexes creates the status index used by every filtered query
func (r *CampaignRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}},
	})
	return err
}

// Create inserts a new campaign, assigning its id and timestamps
func (r *CampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	if campaign.ID.IsZero() {
		campaign.ID = primitive.NewObjectID()
	}
	now := r.now()
	campaign.CreatedAt = now
	campaign.UpdatedAt = now
	normalize(campaign)

	_, err := r.collection.InsertOne(ctx, campaign)
	return err
}

// Find returns every campaign matching the filter in natural order
func (r *CampaignRepository) Find(ctx context.Context, filter repositories.CampaignFilter) ([]*models.Campaign, error) {
	cursor, err := r.collection.Find(ctx, filterDoc(filter))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var campaigns []*models.Campaign
	if err := cursor.All(ctx, &campaigns); err != nil {
		return nil, err
	}

	// Ensure an empty slice is returned instead of nil if no campaigns found
	if campaigns == nil {
		campaigns = []*models.Campaign{}
	}
	for _, c := range campaigns {
		normalize(c)
	}
	return campaigns, nil
}

// FindByID finds a campaign by ID
func (r *CampaignRepository) FindByID(ctx context.Context, id primitive.ObjectID, filter repositories.CampaignFilter) (*models.Campaign, error) {
	query := filterDoc(filter)
	query["_id"] = id

	var campaign models.Campaign
	if err := r.collection.FindOne(ctx, query).Decode(&campaign); err != nil {
		return nil, mapErr(err)
	}
	normalize(&campaign)
	return &campaign, nil
}

// Update sets the patched fields in a single findAndModify
func (r *CampaignRepository) Update(ctx context.Context, id primitive.ObjectID, patch models.CampaignPatch, filter repositories.CampaignFilter) (*models.Campaign, error) {
	set := bson.M{"updatedAt": r.now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Leads != nil {
		set["leads"] = nonNil(*patch.Leads)
	}
	if patch.AccountIDs != nil {
		set["accountIDs"] = nonNil(*patch.AccountIDs)
	}
	return r.findAndSet(ctx, id, set, filter)
}

// SetStatus changes only the status and modification time
func (r *CampaignRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status models.CampaignStatus, filter repositories.CampaignFilter) (*models.Campaign, error) {
	return r.findAndSet(ctx, id, bson.M{"status": status, "updatedAt": r.now()}, filter)
}

// Count counts campaigns matching the filter
func (r *CampaignRepository) Count(ctx context.Context, filter repositories.CampaignFilter) (int64, error) {
	return r.collection.CountDocuments(ctx, filterDoc(filter))
}

func (r *CampaignRepository) findAndSet(ctx context.Context, id primitive.ObjectID, set bson.M, filter repositories.CampaignFilter) (*models.Campaign, error) {
	query := filterDoc(filter)
	query["_id"] = id

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var campaign models.Campaign
	err := r.collection.FindOneAndUpdate(ctx, query, bson.M{"$set": set}, opts).Decode(&campaign)
	if err != nil {
		return nil, mapErr(err)
	}
	normalize(&campaign)
	return &campaign, nil
}

func filterDoc(filter repositories.CampaignFilter) bson.M {
	query := bson.M{}
	if len(filter.ExcludeStatuses) > 0 {
		query["status"] = bson.M{"$nin": filter.ExcludeStatuses}
	}
	return query
}

func mapErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repositories.ErrNotFound
	}
	return err
}

func normalize(c *models.Campaign) {
	c.Leads = nonNil(c.Leads)
	c.AccountIDs = nonNil(c.AccountIDs)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
