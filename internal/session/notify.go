package session

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/Sahabat-Khairat/sholat/internal/model"
)

// MQTTNotifier pushes next-prayer transitions to signage devices over
// a broker. Messages are retained so a screen that connects late still
// sees the current target.
type MQTTNotifier struct {
	client mqtt.Client
	topic  string
}

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Error().Err(err).Msg("MQTT connection lost")
}

func NewMQTTNotifier(brokerURL, clientID, topic string) (*MQTTNotifier, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %v", token.Error())
	}
	return &MQTTNotifier{client: client, topic: topic}, nil
}

func (n *MQTTNotifier) NotifyNextPrayer(next model.NextPrayer) {
	payload, err := json.Marshal(next)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode next prayer notification")
		return
	}
	token := n.client.Publish(n.topic, 0, true, payload)
	go func() {
		if token.Wait() && token.Error() != nil {
			log.Error().Err(token.Error()).Str("topic", n.topic).Msg("failed to publish next prayer")
		}
	}()
}
