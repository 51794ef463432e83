package misc

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"

	log "github.com/sirupsen/logrus"
)

type Tip struct {
	Text  string `json:"text"`
	Topic string `json:"topic"`
}

func NewTip(text string, topic string) *Tip {
	return &Tip{
		Text:  text,
		Topic: topic,
	}
}

// TipsManager serves the coaching tips shown around the app, loaded once
// from a CSV file on startup.
type TipsManager struct {
	Tips       []*Tip
	TopicsTips map[string][]*Tip
}

func NewTipsManager(tipsCsvReader *csv.Reader) (*TipsManager, error) {
	tm := &TipsManager{}
	tm.TopicsTips = make(map[string][]*Tip)

	log.Println("reading tips CSV ...")

	tipsCsvReader.Comma = ';'
	for {
		record, err := tipsCsvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if len(record) != 2 {
			return nil, fmt.Errorf("record [%s] does not have 2 elements", record)
		}

		// TIP;TOPIC
		tip := NewTip(record[0], record[1])
		tm.Tips = append(tm.Tips, tip)
		tm.TopicsTips[tip.Topic] = append(tm.TopicsTips[tip.Topic], tip)
	}

	log.Printf("tips CSV read %d tips", len(tm.Tips))

	return tm, nil
}

func (tm *TipsManager) RandomTip() *Tip {
	index := rand.Float64() * float64(len(tm.Tips))
	return tm.Tips[int(index)]
}

// RandomTipForTopic falls back to any tip when the topic is unknown.
func (tm *TipsManager) RandomTipForTopic(topic string) *Tip {
	tips, ok := tm.TopicsTips[topic]
	if !ok || len(tips) == 0 {
		return tm.RandomTip()
	}
	index := rand.Float64() * float64(len(tips))
	return tips[int(index)]
}
