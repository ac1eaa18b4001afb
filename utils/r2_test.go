package utils

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"run-tracker/config"
)

type fakePutter struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(in.Body)
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("picture_file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["picture_file"][0]
}

func TestPictureStore_UploadPicture(t *testing.T) {
	putter := &fakePutter{}
	pictures := NewPictureStore(putter, "artifacts-bucket", "https://cdn.example.com/")

	url, err := pictures.UploadPicture(context.Background(), fileHeader(t, "Medal.PNG", []byte("png-bytes")))
	require.NoError(t, err)

	require.Len(t, putter.inputs, 1)
	in := putter.inputs[0]
	assert.Equal(t, "artifacts-bucket", aws.ToString(in.Bucket))
	key := aws.ToString(in.Key)
	assert.True(t, strings.HasPrefix(key, "artifacts/"), key)
	assert.True(t, strings.HasSuffix(key, ".png"), key)
	assert.Equal(t, "https://cdn.example.com/"+key, url)
	assert.Equal(t, []byte("png-bytes"), putter.bodies[0])
}

func TestPictureStore_UploadError(t *testing.T) {
	pictures := NewPictureStore(&fakePutter{err: errors.New("denied")}, "b", "https://cdn.example.com")

	_, err := pictures.UploadPicture(context.Background(), fileHeader(t, "a.png", []byte("x")))
	assert.ErrorContains(t, err, "denied")
}

func TestIsPicture(t *testing.T) {
	assert.True(t, IsPicture(fileHeader(t, "a.JPG", []byte("x"))))
	assert.True(t, IsPicture(fileHeader(t, "a.webp", []byte("x"))))
	assert.False(t, IsPicture(fileHeader(t, "a.exe", []byte("x"))))
	assert.False(t, IsPicture(nil))

	big := fileHeader(t, "big.png", []byte("x"))
	big.Size = MaxPictureSize + 1
	assert.False(t, IsPicture(big))
}

func TestInitR2_DefaultsCDNToBucketEndpoint(t *testing.T) {
	pictures, err := InitR2(context.Background(), config.R2Config{
		AccountID:       "acc",
		AccessKeyID:     "key",
		AccessKeySecret: "secret",
		Bucket:          "bucket",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://acc.r2.cloudflarestorage.com/bucket", pictures.cdnBaseURL)
	assert.Equal(t, "bucket", pictures.bucket)
}
