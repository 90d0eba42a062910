package config

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
	"github.com/pkg/errors"
)

// SSMParameterStore reads SecureString parameters from AWS Systems Manager.
type SSMParameterStore struct {
	Region string

	svcFunc func(client.ConfigProvider) ssmiface.SSMAPI
}

// NewSSMParameterStore returns a parameter store for region. An empty region
// defers to the sdk's own resolution.
func NewSSMParameterStore(region string) *SSMParameterStore {
	return &SSMParameterStore{Region: region}
}

// svc is used internally to assist stubs on ssm for testing
func (s *SSMParameterStore) svc(p client.ConfigProvider) ssmiface.SSMAPI {
	if s.svcFunc != nil {
		return s.svcFunc(p)
	}

	return ssm.New(p)
}

// Parameter returns the decrypted value of the named parameter.
func (s *SSMParameterStore) Parameter(ctx context.Context, name string) (string, error) {
	cfg := &aws.Config{}
	if s.Region != "" {
		cfg.Region = aws.String(s.Region)
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return "", errors.Wrap(err, "failed getting session")
	}

	out, err := s.svc(sess).GetParameterWithContext(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed getting parameter %v", name)
	}

	if out == nil || out.Parameter == nil || out.Parameter.Value == nil {
		return "", errors.Errorf("parameter %v has no value", name)
	}

	return *out.Parameter.Value, nil
}
