/*
Copyright 2025 Sireline Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package notification

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/sireline/sireline/internal/request"
	"github.com/sirupsen/logrus"

	"github.com/sireline/sireline/config"
)

// SlackNotification sends an error message to a Slack webhook.
func SlackNotification(err error) {
	data := json.RawMessage(fmt.Sprintf(`{
		"blocks": [
			{
				"type": "header",
				"text": {
					"type": "plain_text",
					"text": "Error From Sireline 🐞",
					"emoji": true
				}
			},
			{
				"type": "section",
				"fields": [
					{
						"type": "mrkdwn",
						"text": "*Error:*\n%v"
					}
				]
			},
			{
				"type": "section",
				"fields": [
					{
						"type": "mrkdwn",
						"text": "*Time:*\n%v"
					}
				]
			}
		]
	}`, err.Error(), time.Now().Format(time.RFC822)))

	conf, err := config.Fetch()
	if err != nil {
		log.Println(err)
		return
	}

	payload, err := request.ToJsonReq(&data)
	if err != nil {
		log.Println(err)
		return
	}

	req, err := http.NewRequest("POST", conf.Notification.Slack.WebhookUrl, payload)
	if err != nil {
		log.Println(err)
		return
	}

	var response map[string]interface{}
	_, err = request.Call(req, &response)
	if err != nil {
		log.Println(err)
	}
}

// NotifyError sends an error notification through the configured notification system.
// It logs the error locally and sends a notification via Slack (if configured).
// The notification is fire-and-forget; callers never depend on it succeeding.
func NotifyError(systemError error) {
	go func(systemError error) {
		logrus.Error(systemError)

		conf, err := config.Fetch()
		if err != nil {
			log.Println(err)
			return
		}

		if conf.Notification.Slack.WebhookUrl != "" {
			SlackNotification(systemError)
		}
	}(systemError)
}

// NotifyEvent emits a semantic domain event (e.g. "match.outcome.recorded") to the
// configured webhook sink. Delivery is fire-and-forget.
func NotifyEvent(event string, payload interface{}) {
	go func() {
		logrus.WithField("event", event).Info("domain event")

		conf, err := config.Fetch()
		if err != nil {
			log.Println(err)
			return
		}

		if conf.Notification.Webhook.Url == "" {
			return
		}

		body, err := request.ToJsonReq(map[string]interface{}{
			"event":   event,
			"payload": payload,
			"time":    time.Now().UTC(),
		})
		if err != nil {
			log.Println(err)
			return
		}

		req, err := http.NewRequest("POST", conf.Notification.Webhook.Url, body)
		if err != nil {
			log.Println(err)
			return
		}
		for k, v := range conf.Notification.Webhook.Headers {
			req.Header.Set(k, v)
		}

		var response map[string]interface{}
		if _, err := request.Call(req, &response); err != nil {
			log.Println(err)
		}
	}()
}
