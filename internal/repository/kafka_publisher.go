package repository

import (
	"context"

	"ScenarioSim/internal/domain/models"
	domrepo "ScenarioSim/internal/domain/repository"
	pkgkafka "ScenarioSim/pkg/kafka"
)

// KafkaResultPublisher emits finished simulation results to a Kafka topic.
// Messages are keyed by simulation ID so one run's results stay ordered.
type KafkaResultPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

var _ domrepo.ResultPublisher = (*KafkaResultPublisher)(nil)

// NewKafkaResultPublisher creates a Kafka-backed result publisher.
func NewKafkaResultPublisher(producer *pkgkafka.Producer, topic string) *KafkaResultPublisher {
	return &KafkaResultPublisher{producer: producer, topic: topic}
}

type branchEvent struct {
	Kind         string                    `json:"kind"`
	SimulationID string                    `json:"simulation_id"`
	Branches     []models.SimulationBranch `json:"branches"`
}

type monteCarloEvent struct {
	Kind         string                  `json:"kind"`
	SimulationID string                  `json:"simulation_id"`
	Result       models.MonteCarloResult `json:"result"`
}

// PublishBranches emits the ranked branches of one run.
func (p *KafkaResultPublisher) PublishBranches(ctx context.Context, simulationID string, branches []models.SimulationBranch) error {
	ev := branchEvent{Kind: "branches", SimulationID: simulationID, Branches: branches}
	return p.producer.Publish(ctx, p.topic, []byte(simulationID), ev)
}

// PublishMonteCarlo emits one aggregated Monte Carlo result.
func (p *KafkaResultPublisher) PublishMonteCarlo(ctx context.Context, simulationID string, res models.MonteCarloResult) error {
	ev := monteCarloEvent{Kind: "monte_carlo", SimulationID: simulationID, Result: res}
	return p.producer.Publish(ctx, p.topic, []byte(simulationID), ev)
}

// Close closes the underlying producer.
func (p *KafkaResultPublisher) Close() error {
	return p.producer.Close()
}
