package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/dmitrijs2005/filedrive/internal/client/sessionstore"
)

// cognitoAPI is the part of the Cognito user pool API the client calls.
type cognitoAPI interface {
	InitiateAuth(ctx context.Context, in *cip.InitiateAuthInput, optFns ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
	SignUp(ctx context.Context, in *cip.SignUpInput, optFns ...func(*cip.Options)) (*cip.SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, in *cip.ConfirmSignUpInput, optFns ...func(*cip.Options)) (*cip.ConfirmSignUpOutput, error)
	RevokeToken(ctx context.Context, in *cip.RevokeTokenInput, optFns ...func(*cip.Options)) (*cip.RevokeTokenOutput, error)
}

// CognitoProvider talks to a Cognito user pool through a public app client.
type CognitoProvider struct {
	api      cognitoAPI
	clientID string
}

// NewCognitoProvider builds a provider for the app client clientID in
// region. User pool public clients need no IAM identity, so requests are
// sent unsigned.
func NewCognitoProvider(ctx context.Context, region, clientID string) (*CognitoProvider, error) {
	if clientID == "" {
		return nil, errors.New("cognito client id is not configured")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(aws.AnonymousCredentials{}),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &CognitoProvider{api: cip.NewFromConfig(cfg), clientID: clientID}, nil
}

// NewCognitoProviderWithClient wraps an already configured SDK client.
func NewCognitoProviderWithClient(c *cip.Client, clientID string) *CognitoProvider {
	return &CognitoProvider{api: c, clientID: clientID}
}

func (p *CognitoProvider) PasswordAuth(ctx context.Context, username, password string) (sessionstore.Tokens, error) {
	out, err := p.api.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(p.clientID),
		AuthParameters: map[string]string{
			"USERNAME": username,
			"PASSWORD": password,
		},
	})
	if err != nil {
		return sessionstore.Tokens{}, mapCognitoError(err)
	}
	t, err := tokensFrom(out)
	if err != nil {
		return sessionstore.Tokens{}, err
	}
	t.Username = username
	return t, nil
}

func (p *CognitoProvider) RefreshAuth(ctx context.Context, username, refreshToken string) (sessionstore.Tokens, error) {
	out, err := p.api.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeRefreshTokenAuth,
		ClientId: aws.String(p.clientID),
		AuthParameters: map[string]string{
			"REFRESH_TOKEN": refreshToken,
		},
	})
	if err != nil {
		return sessionstore.Tokens{}, mapCognitoError(err)
	}
	t, err := tokensFrom(out)
	if err != nil {
		return sessionstore.Tokens{}, err
	}
	t.Username = username
	return t, nil
}

func (p *CognitoProvider) SignUp(ctx context.Context, req SignUpRequest) (bool, error) {
	email := strings.TrimSpace(req.Email)
	out, err := p.api.SignUp(ctx, &cip.SignUpInput{
		ClientId: aws.String(p.clientID),
		Username: aws.String(email),
		Password: aws.String(req.Password),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
			{Name: aws.String("name"), Value: aws.String(strings.TrimSpace(req.FullName))},
		},
	})
	if err != nil {
		return false, mapCognitoError(err)
	}
	return out.UserConfirmed, nil
}

func (p *CognitoProvider) ConfirmSignUp(ctx context.Context, username, code string) error {
	_, err := p.api.ConfirmSignUp(ctx, &cip.ConfirmSignUpInput{
		ClientId:         aws.String(p.clientID),
		Username:         aws.String(username),
		ConfirmationCode: aws.String(code),
	})
	if err != nil {
		return mapCognitoError(err)
	}
	return nil
}

func (p *CognitoProvider) RevokeToken(ctx context.Context, refreshToken string) error {
	_, err := p.api.RevokeToken(ctx, &cip.RevokeTokenInput{
		ClientId: aws.String(p.clientID),
		Token:    aws.String(refreshToken),
	})
	if err != nil {
		return mapCognitoError(err)
	}
	return nil
}

func tokensFrom(out *cip.InitiateAuthOutput) (sessionstore.Tokens, error) {
	if out.ChallengeName != "" {
		return sessionstore.Tokens{}, fmt.Errorf("%w: %s", ErrChallenge, out.ChallengeName)
	}
	r := out.AuthenticationResult
	if r == nil || aws.ToString(r.IdToken) == "" {
		return sessionstore.Tokens{}, fmt.Errorf("%w: no id token in response", ErrMalformedToken)
	}
	return sessionstore.Tokens{
		IDToken:      aws.ToString(r.IdToken),
		AccessToken:  aws.ToString(r.AccessToken),
		RefreshToken: aws.ToString(r.RefreshToken),
	}, nil
}

// mapCognitoError translates service exceptions into session errors; the
// original error stays in the chain.
func mapCognitoError(err error) error {
	var (
		notAuthorized *types.NotAuthorizedException
		notFound      *types.UserNotFoundException
		notConfirmed  *types.UserNotConfirmedException
		exists        *types.UsernameExistsException
		mismatch      *types.CodeMismatchException
		expired       *types.ExpiredCodeException
		badPassword   *types.InvalidPasswordException
	)
	switch {
	case errors.As(err, &notAuthorized), errors.As(err, &notFound), errors.As(err, &notConfirmed):
		return fmt.Errorf("%w: %w", ErrInvalidLogin, err)
	case errors.As(err, &exists):
		return fmt.Errorf("%w: %w", ErrUserExists, err)
	case errors.As(err, &mismatch), errors.As(err, &expired):
		return fmt.Errorf("%w: %w", ErrCodeMismatch, err)
	case errors.As(err, &badPassword):
		return fmt.Errorf("%w: %w", ErrWeakPassword, err)
	}
	return err
}
