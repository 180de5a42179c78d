package feature

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rushteam/cinerec/core"
	"github.com/rushteam/cinerec/feast"
)

type fakeFeastClient struct {
	values map[string]interface{}
	err    error
	calls  int
}

func (f *fakeFeastClient) GetOnlineFeatures(ctx context.Context, req *feast.GetOnlineFeaturesRequest) (*feast.GetOnlineFeaturesResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &feast.GetOnlineFeaturesResponse{
		FeatureVectors: []feast.FeatureVector{
			{Values: f.values, EntityRow: req.EntityRows[0]},
		},
	}, nil
}

func (f *fakeFeastClient) Close() error { return nil }

func TestResolveRequestedWins(t *testing.T) {
	client := &fakeFeastClient{values: map[string]interface{}{
		"user_genre_prefs:action": 0.9,
	}}
	resolver := NewPreferenceResolver(client)
	user := core.NewUserProfile("alice", 30)

	got := resolver.Resolve(context.Background(), user, []string{"Drama"})
	if !reflect.DeepEqual(got, []string{"Drama"}) {
		t.Errorf("Resolve = %v, want [Drama]", got)
	}
	if client.calls != 0 {
		t.Errorf("请求自带偏好时不应访问 Feature Store，calls = %d", client.calls)
	}
}

func TestResolveFeastFallback(t *testing.T) {
	client := &fakeFeastClient{values: map[string]interface{}{
		"user_genre_prefs:action":          0.9,
		"user_genre_prefs:science_fiction": 0.7,
		"user_genre_prefs:drama":           0.2,
	}}
	resolver := NewPreferenceResolver(client)
	user := core.NewUserProfile("alice", 30)

	got := resolver.Resolve(context.Background(), user, nil)
	want := []string{"Action", "Science Fiction"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve = %v, want %v", got, want)
	}

	// 拉到的权重回填到画像，低于阈值的也保留
	wantInterests := map[string]float64{"Action": 0.9, "Science Fiction": 0.7, "Drama": 0.2}
	if !reflect.DeepEqual(user.Interests, wantInterests) {
		t.Errorf("Interests = %v, want %v", user.Interests, wantInterests)
	}
}

func TestResolveFeastUnavailable(t *testing.T) {
	client := &fakeFeastClient{err: errors.New("connection refused")}
	resolver := NewPreferenceResolver(client)
	user := core.NewUserProfile("bob", 25)

	got := resolver.Resolve(context.Background(), user, nil)
	if len(got) != 0 {
		t.Errorf("Feature Store 不可用时应降级为空集，got %v", got)
	}
}

func TestResolveNilClient(t *testing.T) {
	resolver := NewPreferenceResolver(nil)
	user := core.NewUserProfile("carol", 40)

	if got := resolver.Resolve(context.Background(), user, nil); got != nil {
		t.Errorf("无客户端时应返回 nil，got %v", got)
	}
}

func TestResolveThresholdOption(t *testing.T) {
	client := &fakeFeastClient{values: map[string]interface{}{
		"user_genre_prefs:action": 0.4,
		"user_genre_prefs:drama":  0.3,
	}}
	resolver := NewPreferenceResolver(client, WithThreshold(0.2))
	user := core.NewUserProfile("dave", 35)

	got := resolver.Resolve(context.Background(), user, nil)
	want := []string{"Action", "Drama"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve = %v, want %v", got, want)
	}
}
