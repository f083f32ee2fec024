package main

import (
	"github.com/aretw0/kinetree/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
)

var metrics = mustMetrics()

func mustMetrics() *observability.Metrics {
	m, err := observability.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		panic(err)
	}
	return m
}
