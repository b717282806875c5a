package discovery

import (
	"fmt"
	"net"
	"strconv"

	"github.com/hashicorp/consul/api"
)

// ServiceRegistration describes how the service announces itself to Consul.
type ServiceRegistration struct {
	Name          string
	Host          string
	Port          int
	HealthPath    string
	CheckInterval string
	CheckTimeout  string
}

// ConsulRegistrar registers and deregisters a service instance with a Consul agent.
type ConsulRegistrar struct {
	agent     *api.Agent
	serviceID string
}

// NewConsulRegistrar creates a registrar talking to the Consul agent at addr.
func NewConsulRegistrar(addr string) (*ConsulRegistrar, error) {
	cfg := api.DefaultConfig()
	cfg.Address = addr

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return &ConsulRegistrar{agent: client.Agent()}, nil
}

// Register announces the service with an HTTP health check.
func (r *ConsulRegistrar) Register(reg ServiceRegistration) error {
	r.serviceID = serviceID(reg)

	interval := reg.CheckInterval
	if interval == "" {
		interval = "10s"
	}
	timeout := reg.CheckTimeout
	if timeout == "" {
		timeout = "2s"
	}

	return r.agent.ServiceRegister(&api.AgentServiceRegistration{
		ID:      r.serviceID,
		Name:    reg.Name,
		Address: reg.Host,
		Port:    reg.Port,
		Check: &api.AgentServiceCheck{
			HTTP:                           "http://" + net.JoinHostPort(reg.Host, strconv.Itoa(reg.Port)) + reg.HealthPath,
			Interval:                       interval,
			Timeout:                        timeout,
			DeregisterCriticalServiceAfter: "1m",
		},
	})
}

// Deregister removes the instance registered by Register.
func (r *ConsulRegistrar) Deregister() error {
	if r.serviceID == "" {
		return nil
	}
	return r.agent.ServiceDeregister(r.serviceID)
}

func serviceID(reg ServiceRegistration) string {
	return fmt.Sprintf("%s-%s-%d", reg.Name, reg.Host, reg.Port)
}
