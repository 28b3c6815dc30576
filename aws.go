package nls

//utility functions for aws

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

//check if any credentials are available in the environment
func HasAWSCredentials() bool {
	awsConfig, err := LoadAWSConfig()
	return err == nil && awsConfig.Credentials != nil && len(awsConfig.Region) > 0
}

var awsConfigMutex *sync.Mutex = &sync.Mutex{}
var loadedAWSConfig *aws.Config

func LoadAWSConfig() (*aws.Config, error) {
	awsConfigMutex.Lock()
	defer awsConfigMutex.Unlock()

	if loadedAWSConfig == nil {
		load, err := awsconfig.LoadDefaultConfig(context.TODO())
		if err != nil {
			loadedAWSConfig = nil
			return nil, err
		}

		loadedAWSConfig = &load
	}

	return loadedAWSConfig, nil
}

//get value from parameter store (aws systems manager)
func GetAWSParameter(name string, encrypted bool) (string, error) {
	cfg, err := LoadAWSConfig()
	if err != nil {
		return "", err
	}

	client := ssm.NewFromConfig(*cfg)

	output, err := client.GetParameter(context.TODO(), &ssm.GetParameterInput{
		Name:           &name,
		WithDecryption: encrypted})

	if err != nil {
		return "", err
	}

	return *output.Parameter.Value, nil
}

var s3mutex *sync.Mutex = &sync.Mutex{}
var s3client *s3.Client //singleton

func getS3Client() (*s3.Client, error) {
	s3mutex.Lock()
	defer s3mutex.Unlock()

	if s3client == nil {
		cfg, err := LoadAWSConfig()
		if err != nil {
			return nil, err
		}

		s3client = s3.NewFromConfig(*cfg)
	}

	return s3client, nil
}

func PutS3Object(ctx context.Context, bucketName string, key string, contentType string, body []byte) (string, error) {
	client, err := getS3Client()
	if err != nil {
		return "", err
	}

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucketName,
		Key:         &key,
		ContentType: &contentType,
		Body:        bytes.NewReader(body)})

	if err != nil {
		return "", err
	}

	return S3Uri(bucketName, key), nil
}

func GetS3Object(ctx context.Context, bucketName string, key string) ([]byte, error) {
	client, err := getS3Client()
	if err != nil {
		return nil, err
	}

	output, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucketName,
		Key:    &key})

	if err != nil {
		return nil, err
	}
	defer output.Body.Close()

	body, err := ioutil.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("reading s3://%s/%s: %w", bucketName, key, err)
	}

	return body, nil
}

func S3Uri(bucketName string, key string) string {
	return fmt.Sprintf("s3://%s/%s", bucketName, key)
}
