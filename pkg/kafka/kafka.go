package kafka

import (
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
)

// ErrorHandler 异步发送失败回调
type ErrorHandler func(err error)

// Producer 生产者
type Producer struct {
	asyncProducer sarama.AsyncProducer
	done          chan struct{}
}

// InitProducer 初始化生产者
func InitProducer(brokers []string, onError ErrorHandler) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = false
	config.Producer.Return.Errors = true
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Partitioner = sarama.NewHashPartitioner
	producer, err := sarama.NewAsyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}
	return newProducer(producer, onError), nil
}

func newProducer(producer sarama.AsyncProducer, onError ErrorHandler) *Producer {
	p := &Producer{asyncProducer: producer, done: make(chan struct{})}
	go p.drainErrors(onError)
	return p
}

// drainErrors 消费错误通道，避免生产者阻塞
func (p *Producer) drainErrors(onError ErrorHandler) {
	defer close(p.done)
	for perr := range p.asyncProducer.Errors() {
		if onError != nil {
			onError(perr)
		}
	}
}

// SendMessage 发送消息
func (p *Producer) SendMessage(topic string, key, value []byte) error {
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.ByteEncoder(key),
		Value: sarama.ByteEncoder(value),
	}
	p.asyncProducer.Input() <- msg
	return nil
}

// SendJSON 以JSON编码发送消息
func (p *Producer) SendJSON(topic, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal kafka message: %w", err)
	}
	return p.SendMessage(topic, []byte(key), data)
}

// Close 关闭生产者
func (p *Producer) Close() error {
	p.asyncProducer.AsyncClose()
	<-p.done
	return nil
}
