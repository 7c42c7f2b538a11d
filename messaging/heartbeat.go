package messaging

import (
	"log"
	"sync"
	"time"

	"ramp/config"
	"ramp/protocol"
)

// Heartbeater announces a Local Controller with an FHM on startup and then
// publishes an HM every heartrate seconds.
type Heartbeater struct {
	client *Client
	ctrl   config.ControllerConfig

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewHeartbeater creates a heartbeater for the given controller identity.
func NewHeartbeater(client *Client, ctrl config.ControllerConfig) *Heartbeater {
	return &Heartbeater{
		client: client,
		ctrl:   ctrl,
		stopCh: make(chan struct{}),
	}
}

// Start sends the initial handshake and begins the heartbeat loop.
func (h *Heartbeater) Start() {
	h.sendHandshake()
	go h.loop()
}

// Stop halts the heartbeat loop.
func (h *Heartbeater) Stop() {
	h.stopOnce.Do(func() { close(h.stopCh) })
}

func (h *Heartbeater) sendHandshake() {
	var sensors []protocol.Sensor
	for _, s := range h.ctrl.Sensors {
		sensors = append(sensors, protocol.Sensor(s))
	}
	fhm, err := protocol.NewFirstHandshake(h.ctrl.LCID, h.ctrl.Name, h.ctrl.IP, h.ctrl.TrainID, sensors)
	if err != nil {
		log.Printf("heartbeater: build handshake: %v", err)
		return
	}
	if err := h.client.PublishMessage(fhm); err != nil {
		log.Printf("heartbeater: send handshake: %v", err)
	} else {
		log.Printf("heartbeater: sent FHM (lc=%s)", h.ctrl.LCID)
	}
}

func (h *Heartbeater) sendHeartbeat() {
	hm, err := protocol.NewHeartbeat(h.ctrl.LCID, h.ctrl.Heartrate)
	if err != nil {
		log.Printf("heartbeater: build heartbeat: %v", err)
		return
	}
	if err := h.client.PublishMessage(hm); err != nil {
		log.Printf("heartbeater: send heartbeat: %v", err)
	}
}

// SendDisconnect publishes a DCM announcing a graceful shutdown.
func (h *Heartbeater) SendDisconnect() {
	dcm, err := protocol.NewDisconnect(h.ctrl.LCID)
	if err != nil {
		log.Printf("heartbeater: build disconnect: %v", err)
		return
	}
	if err := h.client.PublishMessage(dcm); err != nil {
		log.Printf("heartbeater: send disconnect: %v", err)
	}
}

func (h *Heartbeater) loop() {
	interval := time.Duration(h.ctrl.Heartrate) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-h.stopCh:
			return
		case <-ticker.C:
			h.sendHeartbeat()
		}
	}
}
