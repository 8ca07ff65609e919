package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/technovate-fest/event-registration/registrant"
	"github.com/technovate-fest/event-registration/slices"
)

var _ registrant.Repository = &DB{}

type registrantDynamo struct {
	PK     string
	SK     string
	GSI1PK string
	GSI1SK string

	ID                  uuid.UUID
	Version             int
	Name                string
	Email               string
	Phone               string
	Qualification       string
	SchoolOrCollegeName string
	PaymentScreenshot   string
	Status              registrant.Status
	RegisteredAt        time.Time
}

const (
	registrantEntityName = "REGISTRANT"

	// Fixed-width so GSI1SK sorts chronologically as a string.
	registeredAtKeyFormat = "2006-01-02T15:04:05.000000000Z"
)

func registrantPK(email string) string {
	return fmt.Sprintf("%s#%s", registrantEntityName, email)
}

func registrantGSI1SK(registeredAt time.Time, email string) string {
	return fmt.Sprintf("%s#%s", registeredAt.UTC().Format(registeredAtKeyFormat), email)
}

func registrantToDynamo(reg registrant.Registrant) registrantDynamo {
	return registrantDynamo{
		PK:                  registrantPK(reg.Email),
		SK:                  registrantPK(reg.Email),
		GSI1PK:              registrantEntityName,
		GSI1SK:              registrantGSI1SK(reg.RegisteredAt, reg.Email),
		ID:                  reg.ID,
		Version:             reg.Version,
		Name:                reg.Name,
		Email:               reg.Email,
		Phone:               reg.Phone,
		Qualification:       reg.Qualification,
		SchoolOrCollegeName: reg.SchoolOrCollegeName,
		PaymentScreenshot:   reg.PaymentScreenshot,
		Status:              reg.Status,
		RegisteredAt:        reg.RegisteredAt,
	}
}

func dynamoToRegistrant(dynReg registrantDynamo) registrant.Registrant {
	return registrant.Registrant{
		ID:                  dynReg.ID,
		Version:             dynReg.Version,
		Name:                dynReg.Name,
		Email:               dynReg.Email,
		Phone:               dynReg.Phone,
		Qualification:       dynReg.Qualification,
		SchoolOrCollegeName: dynReg.SchoolOrCollegeName,
		PaymentScreenshot:   dynReg.PaymentScreenshot,
		Status:              dynReg.Status,
		RegisteredAt:        dynReg.RegisteredAt,
	}
}

// CreateRegistrant inserts a registrant, relying on the email-keyed PK to
// reject duplicates. Insert-if-absent is the store's uniqueness guarantee;
// nothing is ever silently overwritten.
func (d *DB) CreateRegistrant(ctx context.Context, reg registrant.Registrant) error {
	dynReg := registrantToDynamo(reg)

	item, err := attributevalue.MarshalMap(dynReg)
	if err != nil {
		return registrant.NewFailedToTranslateToDBModelError("Failed to translate registrant to dynamo model", err)
	}

	expr := exprMustBuild(expression.NewBuilder().
		WithCondition(expression.Name("PK").AttributeNotExists()))

	_, err = d.dynamoClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(d.tableName),
		Item:                      item,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var condFailedErr *types.ConditionalCheckFailedException
		if errors.As(err, &condFailedErr) {
			return registrant.NewDuplicateEmailError(reg.Email, err)
		}
		return registrant.NewFailedToWriteError("Failed PutItem call", err)
	}

	return nil
}

func (d *DB) GetRegistrant(ctx context.Context, email string) (registrant.Registrant, error) {
	resp, err := d.dynamoClient.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: registrantPK(email)},
			"SK": &types.AttributeValueMemberS{Value: registrantPK(email)},
		},
	})
	if err != nil {
		return registrant.Registrant{}, registrant.NewFailedToFetchError(fmt.Sprintf("Failed to fetch registrant with email %q", email), err)
	}

	if len(resp.Item) == 0 {
		return registrant.Registrant{}, registrant.NewRegistrantDoesNotExistError(email, nil)
	}

	var dynReg registrantDynamo
	err = attributevalue.UnmarshalMap(resp.Item, &dynReg)
	if err != nil {
		panic(fmt.Sprintf("failed to unmarshal registrant from dynamo: %s", err))
	}

	return dynamoToRegistrant(dynReg), nil
}

// AttachPaymentEvidence conditionally updates the registrant with the stored
// screenshot reference and moves it to CONFIRMED, returning the updated
// record. The attribute_exists condition makes lookup and update one atomic
// find-and-update.
func (d *DB) AttachPaymentEvidence(ctx context.Context, email string, screenshotRef string) (registrant.Registrant, error) {
	expr := exprMustBuild(expression.NewBuilder().
		WithCondition(expression.Name("PK").AttributeExists()).
		WithUpdate(expression.
			Set(expression.Name("PaymentScreenshot"), expression.Value(screenshotRef)).
			Set(expression.Name("Status"), expression.Value(registrant.CONFIRMED)).
			Add(expression.Name("Version"), expression.Value(1))))

	resp, err := d.dynamoClient.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(d.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: registrantPK(email)},
			"SK": &types.AttributeValueMemberS{Value: registrantPK(email)},
		},
		ConditionExpression:       expr.Condition(),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var condFailedErr *types.ConditionalCheckFailedException
		if errors.As(err, &condFailedErr) {
			return registrant.Registrant{}, registrant.NewRegistrantDoesNotExistError(email, err)
		}
		return registrant.Registrant{}, registrant.NewFailedToWriteError("Failed UpdateItem call", err)
	}

	var dynReg registrantDynamo
	err = attributevalue.UnmarshalMap(resp.Attributes, &dynReg)
	if err != nil {
		panic(fmt.Sprintf("failed to unmarshal updated registrant from dynamo: %s", err))
	}

	return dynamoToRegistrant(dynReg), nil
}

// ListRegistrants returns every registrant, most recently registered first,
// paging over the GSI internally until the query is exhausted.
func (d *DB) ListRegistrants(ctx context.Context) ([]registrant.Registrant, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(registrantEntityName))

	expr := exprMustBuild(expression.NewBuilder().WithKeyCondition(keyCond))

	regs := []registrant.Registrant{}
	var startKey map[string]types.AttributeValue

	for {
		result, err := d.dynamoClient.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(d.tableName),
			IndexName:                 aws.String(gsi1),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ScanIndexForward:          aws.Bool(false),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, registrant.NewFailedToFetchError("Failed to fetch registrants from dynamo", err)
		}

		var dynamoItems []registrantDynamo
		err = attributevalue.UnmarshalListOfMaps(result.Items, &dynamoItems)
		if err != nil {
			panic(fmt.Sprintf("failed to unmarshal dynamo registrants: %s", err))
		}

		regs = append(regs, slices.Map(dynamoItems, func(v registrantDynamo) registrant.Registrant {
			return dynamoToRegistrant(v)
		})...)

		if len(result.LastEvaluatedKey) == 0 {
			return regs, nil
		}
		startKey = result.LastEvaluatedKey
	}
}

func exprMustBuild(builder expression.Builder) expression.Expression {
	expr, err := builder.Build()
	if err != nil {
		panic("failed to build dynamo expression")
	}

	return expr
}
