// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package s3

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeObjects) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	f.body, _ = io.ReadAll(params.Body)
	return &s3.PutObjectOutput{}, f.err
}

type fakePresign struct {
	expires time.Duration
}

func (f *fakePresign) PresignGetObject(_ context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	opts := &s3.PresignOptions{}
	for _, fn := range optFns {
		fn(opts)
	}
	f.expires = opts.Expires
	return &v4.PresignedHTTPRequest{URL: "https://bucket.example/" + aws.ToString(params.Key)}, nil
}

func TestPutReport(t *testing.T) {
	objects := &fakeObjects{}
	svc := &Service{client: objects, bucket: "reports"}

	require.NoError(t, svc.PutReport(context.Background(), "scans/o/r/s.json", []byte(`{"ok":true}`)))
	assert.Equal(t, "reports", aws.ToString(objects.input.Bucket))
	assert.Equal(t, "scans/o/r/s.json", aws.ToString(objects.input.Key))
	assert.Equal(t, "application/json", aws.ToString(objects.input.ContentType))
	assert.JSONEq(t, `{"ok":true}`, string(objects.body))
}

func TestPutReport_WrapsError(t *testing.T) {
	svc := &Service{client: &fakeObjects{err: errors.New("boom")}, bucket: "reports"}

	err := svc.PutReport(context.Background(), "k", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestReportURL(t *testing.T) {
	presign := &fakePresign{}
	svc := &Service{presignClient: presign, bucket: "reports"}

	url, err := svc.ReportURL(context.Background(), "scans/o/r/s.json", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example/scans/o/r/s.json", url)
	assert.Equal(t, 15*time.Minute, presign.expires)

	url, err = svc.ReportURL(context.Background(), "", time.Minute)
	require.NoError(t, err)
	assert.Empty(t, url)
}
