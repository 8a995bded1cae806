package fetch

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectGetter struct {
	body        string
	contentType string
	err         error
	gotBucket   string
	gotKey      string
}

func (f *fakeObjectGetter) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.gotBucket = aws.ToString(params.Bucket)
	f.gotKey = aws.ToString(params.Key)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{
		Body:        io.NopCloser(strings.NewReader(f.body)),
		ContentType: aws.String(f.contentType),
	}, nil
}

func TestParseS3URI(t *testing.T) {
	tests := []struct {
		uri     string
		bucket  string
		key     string
		wantErr bool
	}{
		{"s3://resumes/2024/jane.pdf", "resumes", "2024/jane.pdf", false},
		{"s3://resumes/", "", "", true},
		{"https://resumes/jane.pdf", "", "", true},
		{"s3:///jane.pdf", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			bucket, key, err := ParseS3URI(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestS3Source_Fetch(t *testing.T) {
	getter := &fakeObjectGetter{body: "resume text", contentType: "text/plain"}
	source := NewS3Source(getter)

	doc, err := source.Fetch(context.Background(), "s3://resumes/uploads/jane.txt")
	require.NoError(t, err)

	assert.Equal(t, "resumes", getter.gotBucket)
	assert.Equal(t, "uploads/jane.txt", getter.gotKey)
	assert.Equal(t, "jane.txt", doc.Filename)
	assert.Equal(t, "text/plain", doc.ContentType)
	assert.Equal(t, []byte("resume text"), doc.Data)
}

func TestS3Source_FetchError(t *testing.T) {
	source := NewS3Source(&fakeObjectGetter{err: errors.New("access denied")})

	_, err := source.Fetch(context.Background(), "s3://resumes/jane.pdf")
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "access denied")
}

func TestS3Source_TooLarge(t *testing.T) {
	source := NewS3Source(&fakeObjectGetter{body: strings.Repeat("x", 64)})
	source.maxBytes = 16

	_, err := source.Fetch(context.Background(), "s3://resumes/big.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "larger than 16 bytes")
}
