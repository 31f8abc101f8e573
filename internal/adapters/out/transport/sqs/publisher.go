// Package sqs delivers notification messages to an AWS SQS queue read by the chat gateway.
package sqs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"vendorbot/internal/core/ports"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

const DefaultRegion = "us-east-1"

// SQSAPI is the part of the SQS client the publisher needs.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *awssqs.SendMessageInput, optFns ...func(*awssqs.Options)) (*awssqs.SendMessageOutput, error)
}

var _ ports.MessageSender = (*Publisher)(nil)

// Publisher sends each message as a JSON body. Kind, order id and recipient are
// copied into message attributes so the gateway can filter without decoding.
type Publisher struct {
	client   SQSAPI
	queueURL string
}

func NewPublisher(client SQSAPI, queueURL string) (*Publisher, error) {
	if client == nil {
		return nil, errors.New("sqs client is required")
	}
	if queueURL == "" {
		return nil, errors.New("queue url is required")
	}
	return &Publisher{client: client, queueURL: queueURL}, nil
}

// NewPublisherFromConfig builds an SQS client from the default AWS credential chain.
func NewPublisherFromConfig(ctx context.Context, region, queueURL string) (*Publisher, error) {
	cfg, err := LoadAWSConfig(ctx, region)
	if err != nil {
		return nil, err
	}
	return NewPublisher(awssqs.NewFromConfig(cfg), queueURL)
}

func LoadAWSConfig(ctx context.Context, region string) (sdkaws.Config, error) {
	if region == "" {
		region = DefaultRegion
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return cfg, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}

func (p *Publisher) Send(ctx context.Context, msg ports.Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	input := &awssqs.SendMessageInput{
		QueueUrl:    sdkaws.String(p.queueURL),
		MessageBody: sdkaws.String(string(body)),
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			"kind":      stringAttribute(msg.Kind),
			"recipient": stringAttribute(msg.Recipient),
			"order_id": {
				DataType:    sdkaws.String("Number"),
				StringValue: sdkaws.String(strconv.FormatInt(msg.OrderID, 10)),
			},
		},
	}

	if _, err = p.client.SendMessage(ctx, input); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func stringAttribute(v string) sqstypes.MessageAttributeValue {
	return sqstypes.MessageAttributeValue{
		DataType:    sdkaws.String("String"),
		StringValue: sdkaws.String(v),
	}
}
