package cloudwriter

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPutter struct {
	inputs []*s3.PutObjectInput
	bodies []string
	err    error
}

func (p *recordingPutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if p.err != nil {
		return nil, p.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	p.inputs = append(p.inputs, in)
	p.bodies = append(p.bodies, string(body))
	return &s3.PutObjectOutput{}, nil
}

func TestS3WriterUploadsOnClose(t *testing.T) {
	putter := &recordingPutter{}
	f := &S3WriterFactory{client: putter}

	w, err := f.NewWriter(context.Background(), "cafe-bucket", "runs/orders.csv")
	require.NoError(t, err)
	_, err = w.Write([]byte("order_id\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte("1\n"))
	require.NoError(t, err)
	assert.Empty(t, putter.inputs, "nothing is sent before Close")

	require.NoError(t, w.Close())
	require.Len(t, putter.inputs, 1)
	in := putter.inputs[0]
	assert.Equal(t, "cafe-bucket", aws.ToString(in.Bucket))
	assert.Equal(t, "runs/orders.csv", aws.ToString(in.Key))
	assert.Equal(t, "text/csv; charset=utf-8", aws.ToString(in.ContentType))
	assert.Equal(t, int64(11), aws.ToInt64(in.ContentLength))
	assert.Equal(t, "order_id\n1\n", putter.bodies[0])
}

func TestS3WriterErrors(t *testing.T) {
	f := &S3WriterFactory{client: &recordingPutter{err: errors.New("access denied")}}

	_, err := f.NewWriter(context.Background(), "", "orders.csv")
	assert.Error(t, err)

	w, err := f.NewWriter(context.Background(), "b", "orders.csv")
	require.NoError(t, err)
	assert.ErrorContains(t, w.Close(), "orders.csv")
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", contentType("a/orders.json"))
	assert.Equal(t, "application/vnd.apache.parquet", contentType("ORDERS.PARQUET"))
	assert.Equal(t, "application/octet-stream", contentType("README"))
}

func TestS3WriterAbortSkipsUpload(t *testing.T) {
	putter := &recordingPutter{}
	f := &S3WriterFactory{client: putter}

	w, err := f.NewWriter(context.Background(), "cafe-bucket", "orders.csv")
	require.NoError(t, err)
	_, err = w.Write([]byte("order_id\n1"))
	require.NoError(t, err)

	w.Abort()
	require.NoError(t, w.Close())
	assert.Empty(t, putter.inputs)
}
