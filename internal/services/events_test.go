package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/foodgram/internal/models"
	"github.com/sbilibin2017/foodgram/internal/services"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaEventPublisher_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWriter := services.NewMockKafkaWriter(ctrl)
	publisher := services.NewKafkaEventPublisher(mockWriter)

	mockWriter.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msgs ...kafka.Message) error {
			require.Len(t, msgs, 1)

			var event models.Event
			require.NoError(t, json.Unmarshal(msgs[0].Value, &event))
			assert.Equal(t, string(msgs[0].Key), event.EventID)
			assert.NotEmpty(t, event.EventID)
			assert.NotZero(t, event.Timestamp)
			assert.Equal(t, models.EventFavoriteAdded, event.Type)
			assert.Equal(t, int64(1), event.UserID)
			assert.Equal(t, int64(10), event.RecipeID)
			return nil
		})

	publisher.Publish(context.Background(), models.Event{Type: models.EventFavoriteAdded, UserID: 1, RecipeID: 10})

	mockWriter.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
	assert.NotPanics(t, func() {
		publisher.Publish(context.Background(), models.Event{Type: models.EventRecipeDeleted, UserID: 1, RecipeID: 10})
	})
}

func TestKafkaEventPublisher_NilWriter(t *testing.T) {
	publisher := services.NewKafkaEventPublisher(nil)
	assert.NotPanics(t, func() {
		publisher.Publish(context.Background(), models.Event{Type: models.EventRecipeCreated, UserID: 1})
	})
}
