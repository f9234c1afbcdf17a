// Package notify isolates notification delivery so transports can change
// without touching the alert engine. The current transport is the Telegram
// Bot API over plain HTTP.
package notify
