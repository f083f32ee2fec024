/*
Package observability turns realization lifecycle events into Prometheus metrics.

Metrics are attached through domain.LifecycleHooks, so the realizer itself has no
dependency on the metrics client:

	m, _ := observability.NewMetrics(prometheus.DefaultRegisterer)
	eng, _ := kinetree.New(kinetree.WithLifecycleHooks(m.Hooks()))
*/
package observability
