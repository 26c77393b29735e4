// Package s3client issues presigned upload URLs for post media. The client
// never proxies bytes; browsers upload straight to the bucket and the post
// document stores the public download URL.
package s3client

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/openbloom/bloom/apperr"
)

const presignTTL = 15 * time.Minute

type Client struct {
	s3     *s3.S3
	bucket string
	region string
}

func New(bucket, region string) (*Client, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, "failed creating aws session", err)
	}
	return &Client{s3: s3.New(sess), bucket: bucket, region: region}, nil
}

// GetPresignedUrlForPosts returns a short-lived upload URL and the stable
// media URL the uploaded object will be served from.
func (c *Client) GetPresignedUrlForPosts(userId, extension string) (uploadUrl, mediaUrl string, err error) {
	key := fmt.Sprintf("posts/%s/%s.%s", userId, uuid.NewString(), extension)

	req, _ := c.s3.PutObjectRequest(&s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	uploadUrl, err = req.Presign(presignTTL)
	if err != nil {
		return "", "", apperr.Wrap(apperr.KindPersistence, "failed presigning upload url", err)
	}

	mediaUrl = fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
	return uploadUrl, mediaUrl, nil
}

// GetPresignedUrlForProfilePhoto is the same flow for avatar uploads.
func (c *Client) GetPresignedUrlForProfilePhoto(userId, extension string) (uploadUrl, mediaUrl string, err error) {
	key := fmt.Sprintf("profiles/%s/photo.%s", userId, extension)

	req, _ := c.s3.PutObjectRequest(&s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	uploadUrl, err = req.Presign(presignTTL)
	if err != nil {
		return "", "", apperr.Wrap(apperr.KindPersistence, "failed presigning upload url", err)
	}

	mediaUrl = fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
	return uploadUrl, mediaUrl, nil
}
