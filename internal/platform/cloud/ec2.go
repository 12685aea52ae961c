package cloud

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/paasboot/paasboot/internal/config"
	"github.com/paasboot/paasboot/internal/util/retry"
)

// roleTagKey is the instance tag carrying the comma-separated role list.
const roleTagKey = "paasboot:roles"

// EC2API is the slice of the generated EC2 client the agent uses.
type EC2API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	DescribeKeyPairs(ctx context.Context, params *ec2.DescribeKeyPairsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeKeyPairsOutput, error)
	DescribeSecurityGroups(ctx context.Context, params *ec2.DescribeSecurityGroupsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error)
	RunInstances(ctx context.Context, params *ec2.RunInstancesInput, optFns ...func(*ec2.Options)) (*ec2.RunInstancesOutput, error)
}

// EC2Agent implements Agent against the EC2-compatible API.
type EC2Agent struct {
	client EC2API

	// ipPollDelay is the pause between DescribeInstances polls while
	// waiting for a public address.
	ipPollDelay time.Duration
}

// NewEC2Agent creates an agent for Amazon EC2 using the ambient AWS
// configuration (environment, shared config, instance profile).
func NewEC2Agent(ctx context.Context) (*EC2Agent, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return NewEC2AgentWithClient(ec2.NewFromConfig(cfg)), nil
}

// NewEucalyptusAgent creates an agent for a Eucalyptus cloud. Eucalyptus
// exposes the EC2-compatible API on its own endpoint with its own static
// credentials.
func NewEucalyptusAgent(ctx context.Context, endpoint, accessKey, secretKey string) (*EC2Agent, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("eucalyptus endpoint is required (set EC2_URL)")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load eucalyptus configuration: %w", err)
	}

	client := ec2.NewFromConfig(cfg, func(o *ec2.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
	return NewEC2AgentWithClient(client), nil
}

// NewEC2AgentWithClient creates an agent with a custom client.
func NewEC2AgentWithClient(client EC2API) *EC2Agent {
	return &EC2Agent{client: client, ipPollDelay: 5 * time.Second}
}

// CountVMsWithRole implements Agent.
func (a *EC2Agent) CountVMsWithRole(ctx context.Context, role string) (int, error) {
	out, err := a.client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		Filters: []ec2types.Filter{
			{Name: aws.String("tag-key"), Values: []string{roleTagKey}},
			{Name: aws.String("instance-state-name"), Values: []string{"pending", "running"}},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to describe instances: %w", err)
	}

	count := 0
	for _, reservation := range out.Reservations {
		for _, instance := range reservation.Instances {
			if instanceHasRole(instance, role) {
				count++
			}
		}
	}
	return count, nil
}

// KeypairExists implements Agent. A not-found API error means the name is
// free; any other error is surfaced.
func (a *EC2Agent) KeypairExists(ctx context.Context, name string) (bool, error) {
	_, err := a.client.DescribeKeyPairs(ctx, &ec2.DescribeKeyPairsInput{
		KeyNames: []string{name},
	})
	if IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to describe keypair %q: %w", name, err)
	}
	return true, nil
}

// SecurityGroupExists implements Agent.
func (a *EC2Agent) SecurityGroupExists(ctx context.Context, name string) (bool, error) {
	_, err := a.client.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{
		GroupNames: []string{name},
	})
	if IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to describe security group %q: %w", name, err)
	}
	return true, nil
}

// AllocateVM implements Agent. The instance is tagged with its roles at
// launch and the call returns once a public address is assigned.
func (a *EC2Agent) AllocateVM(ctx context.Context, plan *config.Plan, roles []string) (*Host, error) {
	out, err := a.client.RunInstances(ctx, &ec2.RunInstancesInput{
		ImageId:        aws.String(plan.Machine),
		InstanceType:   ec2types.InstanceType(plan.InstanceType),
		KeyName:        aws.String(plan.Keyname),
		SecurityGroups: []string{plan.Group},
		MinCount:       aws.Int32(1),
		MaxCount:       aws.Int32(1),
		TagSpecifications: []ec2types.TagSpecification{
			{
				ResourceType: ec2types.ResourceTypeInstance,
				Tags: []ec2types.Tag{
					{Key: aws.String(roleTagKey), Value: aws.String(strings.Join(roles, ","))},
					{Key: aws.String("paasboot:keyname"), Value: aws.String(plan.Keyname)},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to run instance from image %q: %w", plan.Machine, err)
	}
	if len(out.Instances) == 0 {
		return nil, fmt.Errorf("run instances returned no instance for image %q", plan.Machine)
	}

	instanceID := aws.ToString(out.Instances[0].InstanceId)
	return a.waitForAddress(ctx, instanceID)
}

// waitForAddress polls until the instance has a public address. The
// caller bounds the wait through ctx.
func (a *EC2Agent) waitForAddress(ctx context.Context, instanceID string) (*Host, error) {
	var host *Host

	err := retry.Do(ctx, func() error {
		out, err := a.client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
			InstanceIds: []string{instanceID},
		})
		if err != nil {
			return err
		}
		for _, reservation := range out.Reservations {
			for _, instance := range reservation.Instances {
				if instance.PublicIpAddress != nil {
					host = &Host{
						InstanceID: instanceID,
						PublicIP:   aws.ToString(instance.PublicIpAddress),
						PrivateIP:  aws.ToString(instance.PrivateIpAddress),
					}
					return nil
				}
			}
		}
		return fmt.Errorf("instance %s has no public address yet", instanceID)
	},
		retry.WithMaxRetries(60),
		retry.WithInitialDelay(a.ipPollDelay),
		retry.WithMaxDelay(a.ipPollDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for instance %s address: %w", instanceID, err)
	}

	return host, nil
}

// instanceHasRole checks the role tag of an instance for the given role.
func instanceHasRole(instance ec2types.Instance, role string) bool {
	for _, tag := range instance.Tags {
		if aws.ToString(tag.Key) != roleTagKey {
			continue
		}
		for _, r := range strings.Split(aws.ToString(tag.Value), ",") {
			if r == role {
				return true
			}
		}
	}
	return false
}
