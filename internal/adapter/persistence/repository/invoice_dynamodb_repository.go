package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"refurbmarket/internal/domain/entities"
	"refurbmarket/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultInvoicesTableName = "invoices"
	defaultCountersTableName = "counters"
	invoicesIDIndex          = "id-index"
	invoiceNumberCounterKey  = "invoice_number"
)

type invoiceItem struct {
	OrderID     string `dynamodbav:"order_id"`
	ID          string `dynamodbav:"id"`
	CompanyID   string `dynamodbav:"company_id"`
	Number      string `dynamodbav:"number"`
	AmountTotal string `dynamodbav:"amount_total"`
	AmountPaid  string `dynamodbav:"amount_paid"`
	Status      string `dynamodbav:"status"`
	IssuedAt    string `dynamodbav:"issued_at,omitempty"`
	DueAt       string `dynamodbav:"due_at,omitempty"`
	DocumentRef string `dynamodbav:"document_ref,omitempty"`
	CreatedAt   string `dynamodbav:"created_at"`
}

// InvoiceDynamoRepository persists Invoice entities in DynamoDB.
//
// Table requirements:
//   - PK: order_id (string) — an order has at most one invoice, so the order
//     id as PK turns InvoiceAlreadyExists into a conditional put
//   - GSI: id-index (PK: id) for lookups by invoice id
//
// A separate counters table (PK: name) backs the sequential invoice number
// via an atomic ADD.
//
// amount_total is written once at creation; no update expression in this file
// touches it. amount_paid is the accumulator payment recording does its
// compare-and-set against.
type InvoiceDynamoRepository struct {
	ddb           *dynamodb.Client
	tableName     string
	countersTable string
}

var _ interfaces.IInvoiceRepository = (*InvoiceDynamoRepository)(nil)

func NewInvoiceDynamoRepository(ddb *dynamodb.Client) *InvoiceDynamoRepository {
	return &InvoiceDynamoRepository{
		ddb:           ddb,
		tableName:     getenvDefault("INVOICES_TABLE", defaultInvoicesTableName),
		countersTable: getenvDefault("COUNTERS_TABLE", defaultCountersTableName),
	}
}

// Create persists the invoice unless the order already has one; the failed
// guard returns an empty invoice with no error.
func (r *InvoiceDynamoRepository) Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	av, err := attributevalue.MarshalMap(toInvoiceItem(inv))
	if err != nil {
		return entities.Invoice{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#order_id)"),
		ExpressionAttributeNames: map[string]string{
			"#order_id": "order_id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Invoice{}, nil
		}
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(invoicesIDIndex),
		KeyConditionExpression: aws.String("id = :id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: id},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	if len(out.Items) == 0 {
		return entities.Invoice{}, nil
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Invoice{}, err
	}
	// GSI reads are eventually consistent; re-read the base row so status and
	// amount_paid are current before any decision is made on them.
	return r.GetByOrderID(ctx, it.OrderID)
}

func (r *InvoiceDynamoRepository) GetByOrderID(ctx context.Context, orderID string) (entities.Invoice, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: orderID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	if len(out.Item) == 0 {
		return entities.Invoice{}, nil
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

// NextInvoiceNumber atomically increments the shared counter row and returns
// the new value.
func (r *InvoiceDynamoRepository) NextInvoiceNumber(ctx context.Context) (int64, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.countersTable),
		Key: map[string]types.AttributeValue{
			"name": &types.AttributeValueMemberS{Value: invoiceNumberCounterKey},
		},
		UpdateExpression: aws.String("ADD #current :one"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ExpressionAttributeNames: map[string]string{
			"#current": "current_value",
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}

	raw, ok := out.Attributes["current_value"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, errors.New("counter attribute missing from update response")
	}
	return strconv.ParseInt(raw.Value, 10, 64)
}

func (r *InvoiceDynamoRepository) MarkIssued(ctx context.Context, orderID string, issuedAt, dueAt time.Time, documentRef string) (entities.Invoice, error) {
	return r.update(ctx, orderID,
		"SET #status = :issued, #issued_at = :issued_at, #due_at = :due_at, #document_ref = :document_ref",
		"#status = :draft",
		map[string]types.AttributeValue{
			":issued":       &types.AttributeValueMemberS{Value: string(entities.InvoiceStatusIssued)},
			":draft":        &types.AttributeValueMemberS{Value: string(entities.InvoiceStatusDraft)},
			":issued_at":    &types.AttributeValueMemberS{Value: formatTime(issuedAt)},
			":due_at":       &types.AttributeValueMemberS{Value: formatTime(dueAt)},
			":document_ref": &types.AttributeValueMemberS{Value: documentRef},
		},
		map[string]string{
			"#status":       "status",
			"#issued_at":    "issued_at",
			"#due_at":       "due_at",
			"#document_ref": "document_ref",
		},
	)
}

// RegisterPaymentAmount is the serialization point for concurrent payments: a
// string-equality compare-and-set on amount_paid. When the new accumulator
// covers the total, status flips to paid in the same write.
func (r *InvoiceDynamoRepository) RegisterPaymentAmount(ctx context.Context, orderID string, expectedPaid, newPaid decimal.Decimal, markPaid bool) (entities.Invoice, error) {
	updateExpr := "SET #amount_paid = :new_paid"
	values := map[string]types.AttributeValue{
		":new_paid":      &types.AttributeValueMemberS{Value: decimalToString(newPaid)},
		":expected_paid": &types.AttributeValueMemberS{Value: decimalToString(expectedPaid)},
	}
	names := map[string]string{"#amount_paid": "amount_paid"}
	if markPaid {
		updateExpr += ", #status = :paid"
		values[":paid"] = &types.AttributeValueMemberS{Value: string(entities.InvoiceStatusPaid)}
		names["#status"] = "status"
	}
	return r.update(ctx, orderID, updateExpr, "#amount_paid = :expected_paid", values, names)
}

func (r *InvoiceDynamoRepository) MarkPaid(ctx context.Context, orderID string) (entities.Invoice, error) {
	return r.update(ctx, orderID,
		"SET #status = :paid",
		"#status = :issued",
		map[string]types.AttributeValue{
			":paid":   &types.AttributeValueMemberS{Value: string(entities.InvoiceStatusPaid)},
			":issued": &types.AttributeValueMemberS{Value: string(entities.InvoiceStatusIssued)},
		},
		map[string]string{"#status": "status"},
	)
}

func (r *InvoiceDynamoRepository) update(
	ctx context.Context,
	orderID string,
	updateExpr string,
	conditionExpr string,
	values map[string]types.AttributeValue,
	names map[string]string,
) (entities.Invoice, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: orderID},
		},
		ConditionExpression:       aws.String("attribute_exists(#order_id) AND (" + conditionExpr + ")"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#order_id": "order_id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Invoice{}, nil
		}
		return entities.Invoice{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Invoice{}, nil
	}
	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func toInvoiceItem(inv entities.Invoice) invoiceItem {
	it := invoiceItem{
		OrderID:     inv.OrderID,
		ID:          inv.ID,
		CompanyID:   inv.CompanyID,
		Number:      inv.Number,
		AmountTotal: decimalToString(inv.AmountTotal),
		AmountPaid:  decimalToString(inv.AmountPaid),
		Status:      string(inv.Status),
		DocumentRef: inv.DocumentRef,
		CreatedAt:   formatTime(inv.CreatedAt),
	}
	if inv.IssuedAt != nil {
		it.IssuedAt = formatTime(*inv.IssuedAt)
	}
	if inv.DueAt != nil {
		it.DueAt = formatTime(*inv.DueAt)
	}
	return it
}

func fromInvoiceItem(it invoiceItem) entities.Invoice {
	inv := entities.Invoice{
		ID:          it.ID,
		OrderID:     it.OrderID,
		CompanyID:   it.CompanyID,
		Number:      it.Number,
		AmountTotal: decimalFromString(it.AmountTotal),
		AmountPaid:  decimalFromString(it.AmountPaid),
		Status:      entities.InvoiceStatus(it.Status),
		DocumentRef: it.DocumentRef,
		CreatedAt:   parseTime(it.CreatedAt),
	}
	if it.IssuedAt != "" {
		t := parseTime(it.IssuedAt)
		inv.IssuedAt = &t
	}
	if it.DueAt != "" {
		t := parseTime(it.DueAt)
		inv.DueAt = &t
	}
	return inv
}
