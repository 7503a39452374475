package main

import (
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigateway"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

type FutsalStackProps struct {
	awscdk.StackProps
	PostgresDSN string
	RedisURL    string
	AdminEmail  string
}

// NewFutsalStack deploys the dashboard as one Lambda behind API Gateway. The
// database and Redis live outside the stack and are passed in by URL.
func NewFutsalStack(scope constructs.Construct, id string, props *FutsalStackProps) awscdk.Stack {
	var stackProps awscdk.StackProps
	if props != nil {
		stackProps = props.StackProps
	} else {
		props = &FutsalStackProps{}
	}

	stack := awscdk.NewStack(scope, &id, &stackProps)

	lambdaFn := awslambda.NewFunction(stack, jsii.String("FutsalDashboard"), &awslambda.FunctionProps{
		Runtime:    awslambda.Runtime_PROVIDED_AL2023(),
		Handler:    jsii.String("bootstrap"),
		Code:       awslambda.Code_FromAsset(jsii.String("../"), nil),
		MemorySize: jsii.Number(256),
		Timeout:    awscdk.Duration_Seconds(jsii.Number(15)),
		Environment: &map[string]*string{
			"APP":          jsii.String("prod"),
			"POSTGRES_DSN": jsii.String(props.PostgresDSN),
			"REDIS_URL":    jsii.String(props.RedisURL),
			"ADMIN_EMAIL":  jsii.String(props.AdminEmail),
		},
	})

	api := awsapigateway.NewLambdaRestApi(stack, jsii.String("FutsalApiGateway"), &awsapigateway.LambdaRestApiProps{
		Handler: lambdaFn,
	})

	awscdk.NewCfnOutput(stack, jsii.String("DashboardURL"), &awscdk.CfnOutputProps{Value: api.Url()})

	return stack
}

func main() {
	app := awscdk.NewApp(nil)
	NewFutsalStack(app, "FutsalStack", &FutsalStackProps{
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		RedisURL:    os.Getenv("REDIS_URL"),
		AdminEmail:  os.Getenv("ADMIN_EMAIL"),
	})
	app.Synth(nil)
}
