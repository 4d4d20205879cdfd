package configuration

import "saloon/internal/configuration/properties"

type ConfigProvider interface {
	GetApplication() *properties.ApplicationConfigProperties
	GetTransport() *properties.TransportConfigProperties
	GetRaft() *properties.RaftConfigProperties
	GetMemTable() *properties.MemTableConfigProperties
	GetMetrics() *properties.MetricsConfigProperties
}

type AppConfigProvider struct {
	config *properties.Config
}

func NewProvider(cfg *properties.Config) *AppConfigProvider {
	return &AppConfigProvider{config: cfg}
}

func (c *AppConfigProvider) GetApplication() *properties.ApplicationConfigProperties {
	return &c.config.Application
}

func (c *AppConfigProvider) GetTransport() *properties.TransportConfigProperties {
	return &c.config.Transport
}

func (c *AppConfigProvider) GetRaft() *properties.RaftConfigProperties {
	return &c.config.Raft
}

func (c *AppConfigProvider) GetMemTable() *properties.MemTableConfigProperties {
	return &c.config.MemTable
}

func (c *AppConfigProvider) GetMetrics() *properties.MetricsConfigProperties {
	return &c.config.Metrics
}
