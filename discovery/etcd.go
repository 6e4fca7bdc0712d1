package discovery

import (
	"context"
	"encoding/json"

	clientv3 "go.etcd.io/etcd/client/v3"
)

const keyPrefix = "/livebridge/instances/"

// EtcdRegistry implements Registry on etcd v3. Registration uses a TTL
// lease with background KeepAlive, so a crashed daemon disappears from
// the listing once its lease expires instead of lingering as a ghost.
type EtcdRegistry struct {
	client *clientv3.Client
}

// NewEtcdRegistry connects to the given etcd endpoints.
func NewEtcdRegistry(endpoints []string) (*EtcdRegistry, error) {
	c, err := clientv3.New(clientv3.Config{
		Endpoints: endpoints,
	})
	if err != nil {
		return nil, err
	}
	return &EtcdRegistry{client: c}, nil
}

// Register announces an instance under a TTL lease and starts KeepAlive
// to renew it for as long as the daemon runs.
func (r *EtcdRegistry) Register(instance Instance, ttlSeconds int64) error {
	ctx := context.TODO()

	lease, err := r.client.Grant(ctx, ttlSeconds)
	if err != nil {
		return err
	}

	val, err := json.Marshal(instance)
	if err != nil {
		return err
	}

	_, err = r.client.Put(ctx, keyPrefix+instance.Addr, string(val), clientv3.WithLease(lease.ID))
	if err != nil {
		return err
	}

	ch, err := r.client.KeepAlive(ctx, lease.ID)
	if err != nil {
		return err
	}

	// Drain KeepAlive responses so the channel never fills up.
	go func() {
		for range ch {
		}
	}()
	return nil
}

// Deregister removes an instance. Called during graceful shutdown before
// the listener closes, so clients stop resolving to a dying daemon.
func (r *EtcdRegistry) Deregister(addr string) error {
	_, err := r.client.Delete(context.TODO(), keyPrefix+addr)
	return err
}

// Discover lists every currently registered instance.
func (r *EtcdRegistry) Discover() ([]Instance, error) {
	resp, err := r.client.Get(context.TODO(), keyPrefix, clientv3.WithPrefix())
	if err != nil {
		return nil, err
	}

	instances := make([]Instance, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var inst Instance
		if err := json.Unmarshal(kv.Value, &inst); err != nil {
			continue // skip malformed entries
		}
		instances = append(instances, inst)
	}
	return instances, nil
}

// Watch emits the refreshed instance list whenever a registration,
// deregistration, or lease expiry changes the prefix.
func (r *EtcdRegistry) Watch() <-chan []Instance {
	ch := make(chan []Instance, 1)

	go func() {
		watchChan := r.client.Watch(context.TODO(), keyPrefix, clientv3.WithPrefix())
		for range watchChan {
			// Re-fetch the full list rather than applying individual events.
			instances, _ := r.Discover()
			ch <- instances
		}
	}()

	return ch
}

// Close releases the etcd client connection.
func (r *EtcdRegistry) Close() error {
	return r.client.Close()
}
