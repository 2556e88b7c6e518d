package email

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

/*
sendWithSES sends a raw MIME message through Amazon SES v2.

Credentials and region come from the default AWS chain (AWS_ACCESS_KEY_ID,
AWS_SECRET_ACCESS_KEY, AWS_REGION or a shared profile).
*/
func sendWithSES(ctx context.Context, message Message) (e *xerr.Error) {
	awsConfig, configErr := awsconfig.LoadDefaultConfig(ctx)
	if configErr != nil {
		e = xerr.NewError(configErr, "load AWS configuration", "ses")
		return e
	}

	raw, e := BuildMIME(message)
	if e != nil {
		return e
	}

	client := sesv2.NewFromConfig(awsConfig)
	output, sendErr := client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(message.Sender),
		Destination:      &types.Destination{ToAddresses: message.Recipients},
		Content:          &types.EmailContent{Raw: &types.RawMessage{Data: raw}},
	})
	if sendErr != nil {
		e = xerr.NewError(sendErr, "send via ses", strings.Join(message.Recipients, ","))
		return e
	}

	tl.Log(tl.Verbose, palette.CyanDim, "SES accepted message '%s'", aws.ToString(output.MessageId))
	return nil
}
