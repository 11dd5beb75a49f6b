package repository

import (
	"context"
	"errors"
	"time"

	"refurbmarket/internal/domain/entities"
	"refurbmarket/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultQuotesTableName = "quotes"
	quotesCompanyIDIndex   = "company_id-index"
)

type quoteItem struct {
	ID               string   `dynamodbav:"id"`
	CompanyID        string   `dynamodbav:"company_id"`
	CustomerRef      string   `dynamodbav:"customer_ref,omitempty"`
	AssetID          string   `dynamodbav:"asset_id"`
	ConfigID         string   `dynamodbav:"config_id"`
	Snapshot         string   `dynamodbav:"snapshot"`
	LeadTimeDays     int      `dynamodbav:"lead_time_days"`
	Status           string   `dynamodbav:"status"`
	ConvertedOrderID string   `dynamodbav:"converted_order_id,omitempty"`
	AuditNotes       []string `dynamodbav:"audit_notes,omitempty"`
	CreatedAt        string   `dynamodbav:"created_at"`
	ExpiresAt        string   `dynamodbav:"expires_at"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: company_id-index (PK: company_id)
//
// The converted transition is a conditional write guarded on the current
// status, so two concurrent conversions resolve to exactly one winner.
type QuoteDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("QUOTES_TABLE", defaultQuotesTableName),
	}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	it, err := toQuoteItem(q)
	if err != nil {
		return entities.Quote{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Quote{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it)
}

func (r *QuoteDynamoRepository) ListByCompanyID(ctx context.Context, companyID string) ([]entities.Quote, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(quotesCompanyIDIndex),
		KeyConditionExpression: aws.String("company_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: companyID},
		},
	})
	if err != nil {
		return nil, err
	}

	quotes := make([]entities.Quote, 0, len(out.Items))
	for _, raw := range out.Items {
		var it quoteItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		q, err := fromQuoteItem(it)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// MarkExpired flips active -> expired. The guard keeps a concurrent
// conversion winner's converted status intact.
func (r *QuoteDynamoRepository) MarkExpired(ctx context.Context, id string) (entities.Quote, error) {
	return r.update(ctx, id,
		"SET #status = :expired",
		"#status = :active",
		map[string]types.AttributeValue{
			":expired": &types.AttributeValueMemberS{Value: string(entities.QuoteStatusExpired)},
			":active":  &types.AttributeValueMemberS{Value: string(entities.QuoteStatusActive)},
		},
		map[string]string{"#status": "status"},
	)
}

// MarkConverted is the exactly-once compare-and-set of the pipeline: only an
// active quote can become converted, and the order back-reference is written
// in the same update.
func (r *QuoteDynamoRepository) MarkConverted(ctx context.Context, id, orderID string) (entities.Quote, error) {
	return r.update(ctx, id,
		"SET #status = :converted, #converted_order_id = :oid",
		"#status = :active",
		map[string]types.AttributeValue{
			":converted": &types.AttributeValueMemberS{Value: string(entities.QuoteStatusConverted)},
			":active":    &types.AttributeValueMemberS{Value: string(entities.QuoteStatusActive)},
			":oid":       &types.AttributeValueMemberS{Value: orderID},
		},
		map[string]string{"#status": "status", "#converted_order_id": "converted_order_id"},
	)
}

// ExtendExpiry touches only the expiry field and appends the audit note; the
// snapshot and status attributes are not part of the update expression.
func (r *QuoteDynamoRepository) ExtendExpiry(ctx context.Context, id string, newExpiry time.Time, auditNote string) (entities.Quote, error) {
	return r.update(ctx, id,
		"SET #expires_at = :expires_at, #audit_notes = list_append(if_not_exists(#audit_notes, :empty), :note)",
		"attribute_exists(#id)",
		map[string]types.AttributeValue{
			":expires_at": &types.AttributeValueMemberS{Value: formatTime(newExpiry)},
			":empty":      &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":note": &types.AttributeValueMemberL{Value: []types.AttributeValue{
				&types.AttributeValueMemberS{Value: auditNote},
			}},
		},
		map[string]string{"#expires_at": "expires_at", "#audit_notes": "audit_notes"},
	)
}

func (r *QuoteDynamoRepository) update(
	ctx context.Context,
	id string,
	updateExpr string,
	conditionExpr string,
	values map[string]types.AttributeValue,
	names map[string]string,
) (entities.Quote, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String(conditionExpr),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Quote{}, nil
		}
		return entities.Quote{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Quote{}, nil
	}
	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it)
}

func toQuoteItem(q entities.Quote) (quoteItem, error) {
	snapshot, err := marshalSnapshot(q.Snapshot)
	if err != nil {
		return quoteItem{}, err
	}
	it := quoteItem{
		ID:           q.ID,
		CompanyID:    q.CompanyID,
		CustomerRef:  q.CustomerRef,
		AssetID:      q.AssetID,
		ConfigID:     q.ConfigID,
		Snapshot:     snapshot,
		LeadTimeDays: q.LeadTimeDays,
		Status:       string(q.Status),
		AuditNotes:   q.AuditNotes,
		CreatedAt:    formatTime(q.CreatedAt),
		ExpiresAt:    formatTime(q.ExpiresAt),
	}
	if q.ConvertedOrderID != nil {
		it.ConvertedOrderID = *q.ConvertedOrderID
	}
	return it, nil
}

func fromQuoteItem(it quoteItem) (entities.Quote, error) {
	snapshot, err := unmarshalSnapshot(it.Snapshot)
	if err != nil {
		return entities.Quote{}, err
	}
	q := entities.Quote{
		ID:           it.ID,
		CompanyID:    it.CompanyID,
		CustomerRef:  it.CustomerRef,
		AssetID:      it.AssetID,
		ConfigID:     it.ConfigID,
		Snapshot:     snapshot,
		LeadTimeDays: it.LeadTimeDays,
		Status:       entities.QuoteStatus(it.Status),
		AuditNotes:   it.AuditNotes,
		CreatedAt:    parseTime(it.CreatedAt),
		ExpiresAt:    parseTime(it.ExpiresAt),
	}
	if it.ConvertedOrderID != "" {
		oid := it.ConvertedOrderID
		q.ConvertedOrderID = &oid
	}
	return q, nil
}
