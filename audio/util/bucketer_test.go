package util

import (
	"testing"
)

func TestBucketer(t *testing.T) {
	size := 2049
	frame := make([]float64, size)
	for i := range frame {
		frame[i] = float64(i)
	}

	b := NewBucketer(200)
	if s := b.Stride(size); s != 10 {
		t.Fatal("expected stride 10, got", s)
	}
	buckets, err := b.Bucket(frame)
	if err != nil {
		t.Fatal(err)
	}
	if len(buckets) != 200 {
		t.Fatal("expected 200 buckets, got", len(buckets))
	}
	// bucket i is the mean of i..i+9
	for i, v := range buckets {
		exp := float64(i) + 4.5
		if v != exp {
			t.Fatalf("bucket %d: expected %v, got %v", i, exp, v)
		}
	}
}

func TestBucketerConstant(t *testing.T) {
	frame := make([]float64, 450)
	for i := range frame {
		frame[i] = 3
	}
	buckets, err := NewBucketer(200).Bucket(frame)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range buckets {
		if v != 3 {
			t.Fatalf("bucket %d: expected 3, got %v", i, v)
		}
	}
}

func TestBucketerShortFrame(t *testing.T) {
	b := NewBucketer(200)
	if _, err := b.Bucket(make([]float64, 199)); err != ErrShortFrame {
		t.Fatal("expected ErrShortFrame, got", err)
	}
	if _, err := b.Bucket(make([]float64, 200)); err != nil {
		t.Fatal(err)
	}
}

func TestBucketerWindowsStartAtIndex(t *testing.T) {
	// spectrum of a 4410 sample buffer: 2206 bins, stride 11
	ramp := make([]float64, 2206)
	for i := range ramp {
		ramp[i] = float64(i)
	}
	b := NewBucketer(200)
	buckets, err := b.Bucket(ramp)
	if err != nil {
		t.Fatal(err)
	}
	stride := b.Stride(len(ramp))
	if stride != 11 {
		t.Fatal("expected stride 11, got", stride)
	}
	for _, i := range []int{0, 1, 100, 199} {
		var sum float64
		for _, v := range ramp[i : i+stride] {
			sum += v
		}
		if exp := sum / float64(stride); buckets[i] != exp {
			t.Fatalf("bucket %d: expected %v, got %v", i, exp, buckets[i])
		}
	}
	if buckets[100] != 105 {
		t.Fatal("expected bucket 100 to average ramp[100:111], got", buckets[100])
	}
	if buckets[199] != 204 {
		t.Fatal("expected the last bucket to end at index 209, got", buckets[199])
	}
}
