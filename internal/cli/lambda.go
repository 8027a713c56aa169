package cli

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/spf13/cobra"

	"github.com/saulo-duarte/streaker/internal/config"
	"github.com/saulo-duarte/streaker/internal/router"
)

func init() {
	rootCmd.AddCommand(lambdaCmd)
}

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Serve the API as an AWS Lambda function behind API Gateway",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newContainer(cmd.Context())
		if err != nil {
			return err
		}

		adapter := httpadapter.New(router.New(c.RouterConfig()))
		config.Logger.Info("Starting Lambda handler")
		lambda.Start(adapter.ProxyWithContext)
		return nil
	},
}
